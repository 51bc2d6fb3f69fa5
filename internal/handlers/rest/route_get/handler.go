package route_get

import (
	"errors"
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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail(route.ErrInvalidRouteID.Error()))
		return
	}

	routeEntity, err := h.service.GetRoute(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, route.ErrInvalidRouteID):
			h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, route.ErrRouteNotFound):
			h.write(w, http.StatusNotFound, dto.Fail(err.Error()))
		default:
			h.log.Error("get route", logger.NewField("route_id", routeID), logger.NewField("error", err))
			h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.write(w, http.StatusOK, dto.RouteResponse{
		Result: dto.OK("ok"),
		Route:  dto.NewRoute(*routeEntity),
	})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
