package routes_get

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"routing/internal/entities"
	"routing/internal/handlers/rest/dto"
	"routing/internal/service/route"
	"routing/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	routes, err := h.service.ListRoutes(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, route.ErrInvalidFilter):
			h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		default:
			h.log.Error("list routes", logger.NewField("error", err))
			h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	response := dto.RoutesResponse{
		Result: dto.OK("ok"),
		Count:  len(routes),
		Routes: make([]dto.Route, 0, len(routes)),
	}
	for _, rt := range routes {
		response.Routes = append(response.Routes, dto.NewRoute(rt))
	}

	h.write(w, http.StatusOK, response)
}

// parseFilter пустой параметр означает отсутствие фильтра.
func parseFilter(query url.Values) (entities.RouteFilter, error) {
	var filter entities.RouteFilter

	if s := query.Get("status"); s != "" {
		status, err := entities.RouteStatusFromString(s)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", route.ErrInvalidFilter, err)
		}
		filter.Status = &status
	}

	for key, dst := range map[string]**int64{
		"vehicle_id": &filter.VehicleID,
		"driver_id":  &filter.DriverID,
	} {
		s := query.Get(key)
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: %s must be an integer", route.ErrInvalidFilter, key)
		}
		*dst = &id
	}

	if s := query.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: limit must be a non-negative integer", route.ErrInvalidFilter)
		}
		filter.Limit = limit
	}

	return filter, nil
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
