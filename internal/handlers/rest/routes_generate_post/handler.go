package routes_generate_post

import (
	"errors"
	"fmt"
	"net/http"

	"routing/internal/handlers/rest/dto"
	"routing/internal/service/planning"
	"routing/pkg/logger"
)

// solverFailure реализуется ошибкой клиента солвера.
type solverFailure interface {
	SolverCode() int
	UnplacedCount() int
}

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
	result, err := h.service.GenerateRoutes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := dto.GenerateRoutesResponse{
		Result: dto.OK(fmt.Sprintf(
			"%d routes generated, %d orders programmed, %d rescheduled, %d skipped",
			result.RoutesCreated, result.OrdersProgrammed, result.OrdersRescheduled, result.OrdersSkipped,
		)),
		RoutesCreated:     result.RoutesCreated,
		OrdersProgrammed:  result.OrdersProgrammed,
		OrdersRescheduled: result.OrdersRescheduled,
		OrdersSkipped:     result.OrdersSkipped,
		RouteIDs:          result.RouteIDs,
	}
	if response.RouteIDs == nil {
		response.RouteIDs = []int64{}
	}

	h.write(w, http.StatusCreated, response)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var failure solverFailure
	switch {
	case errors.As(err, &failure):
		h.log.Warn("route generation failed", logger.NewField("error", err))
		h.write(w, http.StatusBadGateway, dto.SolverFailureResponse{
			Result: dto.Fail(fmt.Sprintf(
				"route generation failed: solver code %d, %d orders could not be placed",
				failure.SolverCode(), failure.UnplacedCount(),
			)),
			SolverCode:     failure.SolverCode(),
			OrdersUnplaced: failure.UnplacedCount(),
		})
	case errors.Is(err, planning.ErrRouteGenerationFailed):
		h.log.Warn("route generation failed", logger.NewField("error", err))
		h.write(w, http.StatusBadGateway, dto.Fail(planning.ErrRouteGenerationFailed.Error()))
	case errors.Is(err, planning.ErrNoPendingOrders),
		errors.Is(err, planning.ErrNoAvailableVehicles),
		errors.Is(err, planning.ErrNoRoutableOrders),
		errors.Is(err, planning.ErrVehicleBusy),
		errors.Is(err, planning.ErrOrderAlreadyRouted),
		errors.Is(err, planning.ErrBacklogChanged):
		h.write(w, http.StatusConflict, dto.Fail(err.Error()))
	default:
		h.log.Error("generate routes", logger.NewField("error", err))
		h.write(w, http.StatusInternalServerError, dto.Fail("internal error"))
	}
}

func (h *Handler) write(w http.ResponseWriter, status int, body any) {
	if err := dto.WriteJSON(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
