package state

import (
	"context"
	"fmt"
	"lodge/internal/domains/reservation/model"
	paymentService "lodge/internal/domains/payment/service"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type pendingHandler struct{}

func (h *pendingHandler) Status() model.Status {
	return model.StatusPending
}

func (h *pendingHandler) CanTransitionTo(_ context.Context, _ model.Reservation, target model.Status) error {
	return tableCheck(model.StatusPending, target)
}

func (h *pendingHandler) HandleTransition(_ context.Context, _ *sqlx.Tx, _ model.Reservation, _ model.Status, _ string) (map[string]any, error) {
	return nil, nil
}

type confirmedHandler struct {
	rooms roomRepository.Room
}

func (h *confirmedHandler) Status() model.Status {
	return model.StatusConfirmed
}

func (h *confirmedHandler) CanTransitionTo(_ context.Context, _ model.Reservation, target model.Status) error {
	return tableCheck(model.StatusConfirmed, target)
}

func (h *confirmedHandler) HandleTransition(ctx context.Context, tx *sqlx.Tx, res model.Reservation, target model.Status, actor string) (map[string]any, error) {
	if target == model.StatusCheckedIn {
		if err := h.rooms.UpdateStatusTx(ctx, tx, res.RoomID, roomModel.StatusOccupied, actor); err != nil {
			return nil, fmt.Errorf("failed to mark room occupied: %w", err)
		}
	}

	return nil, nil
}

type checkedInHandler struct {
	rooms    roomRepository.Room
	payments paymentService.Guard
}

func (h *checkedInHandler) Status() model.Status {
	return model.StatusCheckedIn
}

func (h *checkedInHandler) CanTransitionTo(ctx context.Context, res model.Reservation, target model.Status) error {
	if err := tableCheck(model.StatusCheckedIn, target); err != nil {
		return err
	}

	// Checkout is table-valid but additionally guarded: an outstanding balance
	// blocks it with a dedicated error, not the generic invalid transition one.
	if target == model.StatusCheckedOut {
		pending, err := h.payments.HasPendingBalance(ctx, res.ID)
		if err != nil {
			log.Error().Err(err).Str("reservation_id", res.ID).Msg("failed to evaluate payment guard")

			return fmt.Errorf("failed to evaluate payment guard: %w", err)
		}

		if pending {
			return failure.GuardFailed("reservation has a pending payment balance, settle it before checkout") //nolint:wrapcheck
		}
	}

	return nil
}

func (h *checkedInHandler) HandleTransition(ctx context.Context, tx *sqlx.Tx, res model.Reservation, target model.Status, actor string) (map[string]any, error) {
	switch target {
	case model.StatusCheckedOut:
		if err := h.rooms.MarkForCleaningTx(ctx, tx, res.RoomID, actor); err != nil {
			return nil, fmt.Errorf("failed to mark room for cleaning: %w", err)
		}
	case model.StatusCanceled:
		// Cancellation after check-in leaves collected payments behind; flag
		// them for back-office reversal.
		return map[string]any{model.FieldPendingPaymentDelete: true}, nil
	}

	return nil, nil
}

type checkedOutHandler struct {
	rooms roomRepository.Room
}

func (h *checkedOutHandler) Status() model.Status {
	return model.StatusCheckedOut
}

func (h *checkedOutHandler) CanTransitionTo(_ context.Context, _ model.Reservation, target model.Status) error {
	return tableCheck(model.StatusCheckedOut, target)
}

func (h *checkedOutHandler) HandleTransition(ctx context.Context, tx *sqlx.Tx, res model.Reservation, target model.Status, actor string) (map[string]any, error) {
	// Re-entry no-op: make sure the room ended up available again.
	if target == model.StatusCheckedOut {
		if err := h.rooms.UpdateStatusTx(ctx, tx, res.RoomID, roomModel.StatusAvailable, actor); err != nil {
			return nil, fmt.Errorf("failed to mark room available: %w", err)
		}
	}

	return nil, nil
}

type canceledHandler struct{}

func (h *canceledHandler) Status() model.Status {
	return model.StatusCanceled
}

func (h *canceledHandler) CanTransitionTo(_ context.Context, _ model.Reservation, target model.Status) error {
	return tableCheck(model.StatusCanceled, target)
}

func (h *canceledHandler) HandleTransition(_ context.Context, _ *sqlx.Tx, _ model.Reservation, _ model.Status, _ string) (map[string]any, error) {
	return nil, nil
}
