package route_cancel_post

import (
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

	cancellation, err := h.service.CancelRoute(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, route.ErrInvalidRouteID):
			h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrRouteNotFound):
			h.write(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrRouteNotCancellable):
			h.write(w, http.StatusConflict, dto.Fail(err.Error()))
		default:
			h.log.Error("cancel route", logger.NewField("route_id", routeID), logger.NewField("error", err))
			h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.write(w, http.StatusOK, dto.CancelRouteResponse{
		Result: dto.OK(fmt.Sprintf(
			"route %d cancelled, %d orders released", cancellation.RouteID, cancellation.OrdersReleased,
		)),
		RouteID:        cancellation.RouteID,
		OrdersReleased: cancellation.OrdersReleased,
	})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
