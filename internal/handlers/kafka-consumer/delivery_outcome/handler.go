package delivery_outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"routing/internal/entities"
	"routing/internal/service/delivery"
	"routing/pkg/logger"
)

var errUnknownOutcome = errors.New("unknown outcome")

type Handler struct {
	deliveryService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, deliveryService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		deliveryService:          deliveryService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery.outcome: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("delivery.outcome: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing true - прервать ConsumeClaim, сообщение не помечено и будет перечитано.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event outcomeEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("delivery.outcome handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("outcome", event.Outcome),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("delivery.outcome processing")

	outcome, err := h.apply(ctx, event)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.outcome handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, errUnknownOutcome),
			errors.Is(err, delivery.ErrInvalidOrderID),
			errors.Is(err, delivery.ErrMissingProof),
			errors.Is(err, delivery.ErrInvalidFailureReason):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.outcome handler invalid event")

		case errors.Is(err, delivery.ErrOrderNotFound),
			errors.Is(err, delivery.ErrOrderNotInProgress):
			// повтор уже примененного события тоже попадает сюда
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.outcome handler order is not in progress")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("delivery.outcome handler failed to process event")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("route", outcome.RouteID),
		logger.NewField("status", outcome.Status.String()),
		logger.NewField("route_finalized", outcome.RouteFinalized),
	).Info("delivery.outcome: processed")

	sess.MarkMessage(message, "")
	return false
}

func (h *Handler) apply(ctx context.Context, event outcomeEvent) (*entities.DeliveryOutcome, error) {
	switch event.Outcome {
	case outcomeDelivered:
		return h.deliveryService.MarkDelivered(ctx, event.OrderID, event.ProofRef)
	case outcomeFailed:
		return h.deliveryService.MarkFailed(ctx, event.OrderID, event.Reason, event.Note)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownOutcome, event.Outcome)
	}
}
