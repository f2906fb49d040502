package service

import (
	"context"
	"fmt"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/state"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ChangeStatus moves a reservation through its lifecycle. The handler for the
// current status validates the transition and its guards before the write
// transaction opens; inside the transaction it applies the room side effects
// and any extra fields the transition sets.
func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	current := model.Status(reservation.Status)

	handler, err := s.machine.Handler(current)
	if err != nil {
		return err
	}

	if err := handler.CanTransitionTo(ctx, reservation, target); err != nil {
		return err
	}

	result := state.Transition(current, target)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		extras, err := handler.HandleTransition(ctx, tx, reservation, target, user)
		if err != nil {
			return err
		}

		// A self-transition with no extra fields leaves the row untouched;
		// the handler may still have repaired the room state above.
		if result.NoOp && len(extras) == 0 {
			return nil
		}

		changes := map[string]any{
			model.FieldStatus:        target.String(),
			model.FieldIsActive:      result.IsActive,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		for field, value := range extras {
			changes[field] = value
		}

		if err := s.repo.UpdateTx(ctx, tx, changes, filter); err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		return s.audit.Record(ctx, tx, id, constant.AuditEntityReservation, constant.AuditActionUpdateStatus, user)
	})
	if err != nil {
		if !failure.IsClientError(err) {
			log.Error().Err(err).Msg("failed to change reservation status")
		}

		return err
	}

	reservation.Status = target.String()
	reservation.IsActive = result.IsActive

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.ReservationChanged(c, reservation)

		// Cancellations and checkouts free the stay window.
		if target == model.StatusCanceled || target == model.StatusCheckedOut {
			s.notifier.AvailabilityChanged(c, reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate)
		}
	}()

	s.invalidate(ctx, id)

	return nil
}

// AvailableActions reports what a client may do next with a reservation.
func (s *serviceImpl) AvailableActions(ctx context.Context, id string) (res dto.ActionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableActions")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.Status = reservation.Status
	res.Actions = state.ActionsFor(model.Status(reservation.Status))

	return res, nil
}
