package entities

type Driver struct {
	ID    int64
	Name  string
	Email string
}

// OrderContact получатель уведомления "заказ в пути".
type OrderContact struct {
	OrderID    int64
	ClientName string
	Email      string
	Address    string
}
