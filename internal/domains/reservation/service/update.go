package service

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"
)

// Update applies a partial edit to a reservation. A request that changes
// nothing returns success without touching the row, its modified timestamp or
// the audit trail. Status edits go through the state machine like any other
// transition; date edits re-run the overlap scan inside a serializable write
// transaction with the reservation itself excluded.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	changes, checkIn, checkOut, err := s.buildChanges(req, reservation)
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		log.Info().Str("id", id).Msg("reservation update is a no-op")

		return nil
	}

	current := model.Status(reservation.Status)
	datesChanged := !checkIn.Equal(reservation.CheckInDate) || !checkOut.Equal(reservation.CheckOutDate)

	_, statusChanged := changes[model.FieldStatus]
	if statusChanged {
		target := model.Status(req.Status)

		handler, err := s.machine.Handler(current)
		if err != nil {
			return err
		}

		if err := handler.CanTransitionTo(ctx, reservation, target); err != nil {
			return err
		}
	}

	nonStatusEdit := len(changes) > 1 || !statusChanged
	if nonStatusEdit && !state.ActionsFor(current).CanModify {
		return failure.GuardFailed(fmt.Sprintf("a %s reservation can no longer be modified", reservation.Status)) // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	// Date edits re-run the overlap scan, so they need serializable isolation
	// for the same reason Create does. Plain edits keep the cheaper default.
	run := s.txer.WithTransaction
	if datesChanged {
		run = s.txer.WithSerializableTransaction
	}

	err = run(ctx, func(tx *sqlx.Tx) error {
		if datesChanged {
			blockers, err := s.repo.GetOverlappingTx(ctx, tx, reservation.RoomID, checkIn, checkOut, reservation.ID)
			if err != nil {
				return fmt.Errorf("failed to scan for overlapping reservations: %w", err)
			}

			if len(blockers) > 0 {
				return failure.SchedulingConflict(blockers[0].CheckInDate.Format(constant.DateOnlyFormat)) // nolint:wrapcheck
			}
		}

		if statusChanged {
			handler, err := s.machine.Handler(current)
			if err != nil {
				return err
			}

			extras, err := handler.HandleTransition(ctx, tx, reservation, model.Status(req.Status), user)
			if err != nil {
				return err
			}

			result := state.Transition(current, model.Status(req.Status))
			changes[model.FieldIsActive] = result.IsActive

			for field, value := range extras {
				changes[field] = value
			}
		}

		changes[constant.FieldModifiedAt] = timezone.Now()
		changes[constant.FieldModifiedBy] = user

		if err := s.repo.UpdateTx(ctx, tx, changes, filter); err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		return s.audit.Record(ctx, tx, id, constant.AuditEntityReservation, constant.AuditActionUpdate, user)
	})
	if err != nil {
		if !failure.IsClientError(err) {
			log.Error().Err(err).Msg("failed to update reservation")
		}

		return err
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		// The write already committed. Notify with the values just written
		// rather than the stale pre-update copy.
		log.Error().Err(err).Msg("failed to reload reservation after update")

		updated = applyChanges(reservation, changes)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.ReservationChanged(c, updated)

		if datesChanged {
			s.notifier.AvailabilityChanged(c, reservation.RoomID, checkIn, checkOut)
		}
	}()

	s.invalidate(ctx, id)

	return nil
}

// applyChanges projects the committed field changes onto the in-memory copy,
// for when the post-commit reload fails.
func applyChanges(reservation model.Reservation, changes map[string]any) model.Reservation {
	if v, ok := changes[model.FieldCheckInDate].(time.Time); ok {
		reservation.CheckInDate = v
	}

	if v, ok := changes[model.FieldCheckOutDate].(time.Time); ok {
		reservation.CheckOutDate = v
	}

	if v, ok := changes[model.FieldStatus].(string); ok {
		reservation.Status = v
	}

	if v, ok := changes[model.FieldIsActive].(bool); ok {
		reservation.IsActive = v
	}

	if v, ok := changes[model.FieldGuests].([]byte); ok {
		reservation.Guests = types.JSONText(v)
	}

	if v, ok := changes[model.FieldObservations].(string); ok {
		reservation.Observations = v
	}

	if v, ok := changes[model.FieldOrigin].(string); ok {
		reservation.Origin = v
	}

	if v, ok := changes[model.FieldPendingPaymentDelete].(bool); ok {
		reservation.PendingPaymentDelete = v
	}

	if v, ok := changes[constant.FieldModifiedAt].(time.Time); ok {
		reservation.ModifiedAt = v
	}

	if v, ok := changes[constant.FieldModifiedBy].(string); ok {
		reservation.ModifiedBy = v
	}

	return reservation
}

// buildChanges diffs the request against the stored reservation and returns
// only the fields that actually differ, plus the effective stay window.
func (s *serviceImpl) buildChanges(req dto.UpdateReservationRequest, reservation model.Reservation) (map[string]any, time.Time, time.Time, error) {
	changes := map[string]any{}
	checkIn := reservation.CheckInDate
	checkOut := reservation.CheckOutDate

	if req.CheckInDate != constant.Empty {
		parsed, err := time.Parse(constant.DateOnlyFormat, req.CheckInDate)
		if err != nil {
			return nil, checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid check-in date: %v", err)) // nolint:wrapcheck
		}

		if !parsed.Equal(reservation.CheckInDate) {
			changes[model.FieldCheckInDate] = parsed
			checkIn = parsed
		}
	}

	if req.CheckOutDate != constant.Empty {
		parsed, err := time.Parse(constant.DateOnlyFormat, req.CheckOutDate)
		if err != nil {
			return nil, checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid check-out date: %v", err)) // nolint:wrapcheck
		}

		if !parsed.Equal(reservation.CheckOutDate) {
			changes[model.FieldCheckOutDate] = parsed
			checkOut = parsed
		}
	}

	if !checkIn.Before(checkOut) {
		return nil, checkIn, checkOut, failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	if req.Status != constant.Empty && req.Status != reservation.Status {
		changes[model.FieldStatus] = req.Status
	}

	if req.Guests != nil {
		guests := make([]model.Guest, len(req.Guests))
		for i, g := range req.Guests {
			guests[i] = model.Guest(g)
		}

		guestsJSON, err := json.Marshal(guests)
		if err != nil {
			return nil, checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid guests payload: %v", err)) // nolint:wrapcheck
		}

		if !bytes.Equal(guestsJSON, reservation.Guests) {
			changes[model.FieldGuests] = guestsJSON
		}
	}

	if req.Observations != constant.Empty && req.Observations != reservation.Observations {
		changes[model.FieldObservations] = req.Observations
	}

	if req.Origin != constant.Empty && req.Origin != reservation.Origin {
		changes[model.FieldOrigin] = req.Origin
	}

	return changes, checkIn, checkOut, nil
}
