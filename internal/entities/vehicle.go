package entities

type Vehicle struct {
	ID    int64
	Plate string

	MaxWeight float64
	MaxVolume float64

	Width  float64
	Length float64
	Height float64

	StartLat float64
	StartLon float64

	Assigned bool
	Deleted  bool
}
