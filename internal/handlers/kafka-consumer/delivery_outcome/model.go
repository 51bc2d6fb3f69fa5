package delivery_outcome

const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
)

// outcomeEvent событие из приложения водителя.
type outcomeEvent struct {
	OrderID  int64  `json:"order_id"`
	Outcome  string `json:"outcome"`
	ProofRef string `json:"proof_ref"`
	Reason   string `json:"reason"`
	Note     string `json:"note"`
}
