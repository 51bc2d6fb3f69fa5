package order_failed_post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"routing/internal/handlers/rest/dto"
	"routing/internal/service/delivery"
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
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail(delivery.ErrInvalidOrderID.Error()))
		return
	}

	var request dto.OrderFailedRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.write(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	outcome, err := h.service.MarkFailed(r.Context(), orderID, request.Reason, request.Note)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidOrderID),
			errors.Is(err, delivery.ErrInvalidFailureReason):
			h.write(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, delivery.ErrOrderNotFound):
			h.write(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, delivery.ErrOrderNotInProgress):
			h.write(w, http.StatusConflict, dto.Fail(err.Error()))
		default:
			h.log.Error("mark order failed", logger.NewField("order_id", orderID), logger.NewField("error", err))
			h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	message := fmt.Sprintf("order %d marked as failed", outcome.OrderID)
	if outcome.RouteFinalized {
		message = fmt.Sprintf("order %d marked as failed, route %d finalized", outcome.OrderID, outcome.RouteID)
	}

	h.write(w, http.StatusOK, dto.DeliveryOutcomeResponse{
		Result:         dto.OK(message),
		OrderID:        outcome.OrderID,
		RouteID:        outcome.RouteID,
		Status:         outcome.Status.String(),
		RouteFinalized: outcome.RouteFinalized,
	})
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
