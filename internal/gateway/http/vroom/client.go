package vroom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"routing/internal/entities"
	"routing/internal/pkg/config"
	"routing/internal/service/planning"
	"routing/pkg/logger"
)

const maxResponseSize = 16 << 20

// Client не ретраит: повтор оптимизации дорогой и решается вызывающей стороной.
type Client struct {
	url        string
	httpClient *http.Client
	params     parameters
	log        clientLogger
}

func New(cfg config.Solver, log clientLogger) *Client {
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		params: parameters{
			TimeLimit:    int64(cfg.TimeLimit.Seconds()),
			VehicleSpeed: cfg.VehicleSpeed,
			ServiceTime:  int64(cfg.ServiceTime.Seconds()),
		},
		log: log,
	}
}

func (c *Client) Solve(ctx context.Context, vehicles []entities.Vehicle, orders []entities.Order) (*entities.RoutePlan, error) {
	if len(vehicles) == 0 {
		return nil, planning.ErrNoVehicles
	}
	if len(orders) == 0 {
		return nil, planning.ErrNoOrders
	}

	req := c.buildRequest(vehicles, orders)

	start := time.Now()
	resp, err := c.send(ctx, req)
	SolverRequestDuration.WithLabelValues(codeLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	return toPlan(resp), nil
}

func (c *Client) buildRequest(vehicles []entities.Vehicle, orders []entities.Order) request {
	req := request{
		Vehicles:   make([]vehicle, 0, len(vehicles)),
		Jobs:       make([]job, 0, len(orders)),
		Parameters: c.params,
	}

	for _, v := range vehicles {
		if v.StartLat == 0 && v.StartLon == 0 {
			c.log.Warn("vehicle start at (0,0)", logger.NewField("vehicle_id", v.ID))
		}
		req.Vehicles = append(req.Vehicles, vehicle{
			ID:       v.ID,
			Start:    [2]float64{v.StartLon, v.StartLat},
			Capacity: []int64{floor(v.MaxWeight), floor(v.MaxVolume)},
		})
	}

	for _, o := range orders {
		var lat, lon float64
		if o.HasCoordinates() {
			lat, lon = *o.Lat, *o.Lon
		}
		if lat == 0 && lon == 0 {
			c.log.Warn("order location at (0,0)", logger.NewField("order_id", o.ID))
		}
		req.Jobs = append(req.Jobs, job{
			ID:       o.ID,
			Location: [2]float64{lon, lat},
			Delivery: []int64{floor(o.Weight), floor(o.Volume())},
			Service:  c.params.ServiceTime,
		})
	}

	return req
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal solver request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create solver request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &SolverError{Code: CodeTransport, Message: err.Error(), err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, &SolverError{Code: CodeTransport, Message: err.Error(), err: err}
	}

	var decoded response
	decodeErr := json.Unmarshal(raw, &decoded)

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && decoded.Error != "" {
			msg = decoded.Error
		}
		return nil, &SolverError{Code: httpResp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, &SolverError{Code: CodeMalformedResponse, Message: decodeErr.Error(), err: decodeErr}
	}

	if decoded.Code != 0 {
		return nil, &SolverError{
			Code:       decoded.Code,
			Message:    decoded.Error,
			Unassigned: len(decoded.Unassigned),
		}
	}

	return &decoded, nil
}

func toPlan(resp *response) *entities.RoutePlan {
	plan := &entities.RoutePlan{
		Routes:     make([]entities.PlannedRoute, 0, len(resp.Routes)),
		Unassigned: make([]int64, 0, len(resp.Unassigned)),
	}

	for _, r := range resp.Routes {
		planned := entities.PlannedRoute{VehicleID: r.Vehicle}
		for _, s := range r.Steps {
			if s.Type != "job" {
				continue
			}
			if id, ok := s.jobID(); ok {
				planned.OrderIDs = append(planned.OrderIDs, id)
			}
		}
		plan.Routes = append(plan.Routes, planned)
	}

	for _, u := range resp.Unassigned {
		plan.Unassigned = append(plan.Unassigned, u.ID)
	}

	return plan
}

func floor(v float64) int64 {
	return int64(math.Floor(v))
}

func codeLabel(err error) string {
	if err == nil {
		return "0"
	}
	var solverErr *SolverError
	if errors.As(err, &solverErr) {
		return strconv.Itoa(solverErr.Code)
	}
	return "unknown"
}
