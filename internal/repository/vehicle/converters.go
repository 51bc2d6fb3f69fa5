package vehicle

import "routing/internal/entities"

func ToDomain(v *VehicleDB) *entities.Vehicle {
	if v == nil {
		return nil
	}

	return &entities.Vehicle{
		ID:        v.ID,
		Plate:     v.Plate,
		MaxWeight: v.MaxWeight,
		MaxVolume: v.MaxVolume,
		Width:     v.Width,
		Length:    v.Length,
		Height:    v.Height,
		StartLat:  v.StartLat,
		StartLon:  v.StartLon,
		Assigned:  v.Assigned,
		Deleted:   v.Deleted,
	}
}

func ToDomainList(models []VehicleDB) []entities.Vehicle {
	vehicles := make([]entities.Vehicle, 0, len(models))
	for i := range models {
		vehicles = append(vehicles, *ToDomain(&models[i]))
	}
	return vehicles
}
