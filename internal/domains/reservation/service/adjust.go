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
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ApplyLateCheckout pushes the checkout moment later on the same day. The
// extension window [old checkout, new checkout) must be free; the scan and
// the write run under serializable isolation so two adjustments racing for
// the same gap cannot both succeed.
func (s *serviceImpl) ApplyLateCheckout(ctx context.Context, req dto.LateCheckoutRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyLateCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	newTime, err := time.Parse(constant.TimeOnlyFormat, req.NewTime)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid checkout time, expected HH:mm: %v", err)) // nolint:wrapcheck
	}

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.canAdjustStay(reservation); err != nil {
		return err
	}

	current := reservation.CheckOutDate
	newCheckOut := time.Date(
		current.Year(), current.Month(), current.Day(),
		newTime.Hour(), newTime.Minute(), 0, 0,
		current.Location(),
	)

	if !newCheckOut.After(current) {
		return failure.BadRequestFromString("new checkout time must be later than the current one") // nolint:wrapcheck
	}

	changes := map[string]any{
		model.FieldCheckOutDate:        newCheckOut,
		model.FieldAppliedLateCheckout: true,
	}

	if err := s.adjustCheckOut(ctx, reservation, newCheckOut, changes); err != nil {
		return err
	}

	s.notifyAdjusted(ctx, reservation, current, newCheckOut)

	return nil
}

// ExtendStay moves the checkout date further out. The added nights
// [old checkout, new checkout) must be free; on conflict the error names the
// nearest blocking reservation's check-in date so the caller knows how far
// the stay could still stretch.
func (s *serviceImpl) ExtendStay(ctx context.Context, req dto.ExtendStayRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtendStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	newCheckOut, err := time.Parse(constant.DateOnlyFormat, req.NewCheckOutDate)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid check-out date: %v", err)) // nolint:wrapcheck
	}

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.canAdjustStay(reservation); err != nil {
		return err
	}

	if !newCheckOut.After(reservation.CheckOutDate) {
		return failure.BadRequestFromString("new check-out date must be later than the current one") // nolint:wrapcheck
	}

	changes := map[string]any{
		model.FieldCheckOutDate: newCheckOut,
	}

	if err := s.adjustCheckOut(ctx, reservation, newCheckOut, changes); err != nil {
		return err
	}

	s.notifyAdjusted(ctx, reservation, reservation.CheckOutDate, newCheckOut)

	return nil
}

// canAdjustStay gates the time-adjustment use-cases on the action table.
func (s *serviceImpl) canAdjustStay(reservation model.Reservation) error {
	if !reservation.IsActive {
		return failure.GuardFailed("reservation is no longer active") // nolint:wrapcheck
	}

	if !state.ActionsFor(model.Status(reservation.Status)).CanAdjustStay {
		return failure.GuardFailed(fmt.Sprintf("cannot adjust the stay of a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	return nil
}

// adjustCheckOut runs the shared serializable read-check-write for both
// adjustments: scan the extension window excluding the reservation itself,
// then persist the new checkout and audit the edit.
func (s *serviceImpl) adjustCheckOut(ctx context.Context, reservation model.Reservation, newCheckOut time.Time, changes map[string]any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)

	err := s.txer.WithSerializableTransaction(ctx, func(tx *sqlx.Tx) error {
		blockers, err := s.repo.GetOverlappingTx(ctx, tx, reservation.RoomID, reservation.CheckOutDate, newCheckOut, reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to scan for overlapping reservations: %w", err)
		}

		if len(blockers) > 0 {
			return failure.SchedulingConflict(blockers[0].CheckInDate.Format(constant.DateOnlyFormat)) // nolint:wrapcheck
		}

		changes[constant.FieldModifiedAt] = timezone.Now()
		changes[constant.FieldModifiedBy] = user

		if err := s.repo.UpdateTx(ctx, tx, changes, filter); err != nil {
			return fmt.Errorf("failed to update reservation checkout: %w", err)
		}

		return s.audit.Record(ctx, tx, reservation.ID, constant.AuditEntityReservation, constant.AuditActionUpdate, user)
	})
	if err != nil {
		if !failure.IsClientError(err) {
			log.Error().Err(err).Msg("failed to adjust reservation checkout")
		}

		return err
	}

	return nil
}

func (s *serviceImpl) notifyAdjusted(ctx context.Context, reservation model.Reservation, oldCheckOut, newCheckOut time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		reservation.CheckOutDate = newCheckOut
		s.notifier.ReservationChanged(c, reservation)
		s.notifier.AvailabilityChanged(c, reservation.RoomID, oldCheckOut, newCheckOut)
	}()

	s.invalidate(ctx, reservation.ID)
}
