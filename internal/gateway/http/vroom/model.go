package vroom

import (
	"encoding/json"
	"errors"
	"fmt"
)

type request struct {
	Vehicles   []vehicle  `json:"vehicles"`
	Jobs       []job      `json:"jobs"`
	Parameters parameters `json:"parameters"`
}

// Координаты в VROOM всегда [lon, lat].
type vehicle struct {
	ID       int64      `json:"id"`
	Start    [2]float64 `json:"start"`
	Capacity []int64    `json:"capacity"`
}

type job struct {
	ID       int64      `json:"id"`
	Location [2]float64 `json:"location"`
	Delivery []int64    `json:"delivery"`
	Service  int64      `json:"service"`
}

type parameters struct {
	TimeLimit    int64   `json:"time_limit"`
	VehicleSpeed float64 `json:"vehicle_speed"`
	ServiceTime  int64   `json:"service_time"`
}

type response struct {
	Code       int             `json:"code"`
	Error      string          `json:"error"`
	Summary    *summary        `json:"summary"`
	Unassigned []unassignedJob `json:"unassigned"`
	Routes     []route         `json:"routes"`
}

type summary struct {
	Cost       int64 `json:"cost"`
	Routes     int   `json:"routes"`
	Unassigned int   `json:"unassigned"`
	Duration   int64 `json:"duration"`
}

type route struct {
	Vehicle int64  `json:"vehicle"`
	Steps   []step `json:"steps"`
}

type step struct {
	Type string `json:"type"`
	ID   *int64 `json:"id"`
	Job  *int64 `json:"job"`
}

// jobID id работы шага: "id", а у старых версий солвера - "job".
func (s step) jobID() (int64, bool) {
	if s.ID != nil {
		return *s.ID, true
	}
	if s.Job != nil {
		return *s.Job, true
	}
	return 0, false
}

// unassignedJob солвер отдает либо голый id, либо объект {"id": ..., "location": ...}.
type unassignedJob struct {
	ID int64
}

func (u *unassignedJob) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		u.ID = id
		return nil
	}

	var obj struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unassigned entry: %w", err)
	}
	if obj.ID == nil {
		return errors.New("unassigned entry without id")
	}

	u.ID = *obj.ID
	return nil
}
