package geocoder

type searchResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		// [lon, lat]
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		PostalCode string `json:"postalcode"`
	} `json:"properties"`
}
