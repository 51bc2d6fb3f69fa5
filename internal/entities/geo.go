package entities

type GeoPoint struct {
	Lat        float64
	Lon        float64
	PostalCode string
}

func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}
