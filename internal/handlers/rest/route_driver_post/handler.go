package route_driver_post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
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
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail(route.ErrInvalidRouteID.Error()))
		return
	}

	var request dto.AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	assignment, err := h.service.AssignDriver(r.Context(), routeID, request.DriverID, request.VehiclePlate)
	if err != nil {
		switch {
		case errors.Is(err, route.ErrInvalidRouteID),
			errors.Is(err, route.ErrInvalidDriverID),
			errors.Is(err, route.ErrInvalidPlate):
			h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrRouteNotFound),
			errors.Is(err, route.ErrDriverNotFound),
			errors.Is(err, route.ErrVehicleNotFound):
			h.write(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrRouteNotAssignable),
			errors.Is(err, route.ErrDriverBusy):
			h.write(w, http.StatusConflict, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrNotificationFailed):
			h.log.Warn("driver notification failed, assignment rolled back",
				logger.NewField("route_id", routeID),
				logger.NewField("error", err),
			)
			h.write(w, http.StatusBadGateway, dto.Fail("driver could not be notified, assignment rolled back"))
		default:
			h.log.Error("assign driver", logger.NewField("route_id", routeID), logger.NewField("error", err))
			h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.write(w, http.StatusOK, dto.AssignDriverResponse{
		Result:       dto.OK(fmt.Sprintf("driver %d assigned to route %d", assignment.DriverID, assignment.RouteID)),
		RouteID:      assignment.RouteID,
		DriverID:     assignment.DriverID,
		VehiclePlate: assignment.VehiclePlate,
	})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
