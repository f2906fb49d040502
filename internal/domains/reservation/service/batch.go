package service

import (
	"context"
	"fmt"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/state"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// DeactivateMany cancels a batch of reservations in one transaction. Business
// rejections (unknown id, status that cannot be canceled) are collected per
// item and never abort the batch; infrastructure errors roll the whole batch
// back. The batch succeeds when at least one item went through.
func (s *serviceImpl) DeactivateMany(ctx context.Context, req dto.BatchRequest) (res dto.BatchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivateMany")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res.Successful = []string{}
	res.Failed = []dto.BatchFailure{}

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, id := range req.IDs {
			reservation, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return fmt.Errorf("failed to get reservation %s: %w", id, err)
			}

			if reservation.ID == constant.Empty {
				res.Failed = append(res.Failed, dto.BatchFailure{ID: id, Reason: "reservation not found"})

				continue
			}

			if !state.ActionsFor(model.Status(reservation.Status)).CanCancel {
				res.Failed = append(res.Failed, dto.BatchFailure{
					ID:     id,
					Reason: fmt.Sprintf("cannot deactivate a %s reservation", reservation.Status),
				})

				continue
			}

			changes := map[string]any{
				model.FieldStatus:        model.StatusCanceled.String(),
				model.FieldIsActive:      false,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}

			if err := s.repo.UpdateTx(ctx, tx, changes, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
				return fmt.Errorf("failed to deactivate reservation %s: %w", id, err)
			}

			if err := s.audit.Record(ctx, tx, id, constant.AuditEntityReservation, constant.AuditActionDeactivate, user); err != nil {
				return err
			}

			res.Successful = append(res.Successful, id)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to deactivate reservations")

		return dto.BatchResponse{}, err
	}

	res.Success = len(res.Successful) > 0

	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range res.Successful {
			s.notifier.ReservationDeleted(c, id)

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return res, nil
}

// ReactivateMany restores canceled reservations to pending. An item only goes
// through when its status allows reactivation, its check-in date has not
// passed and its original stay window is still free.
func (s *serviceImpl) ReactivateMany(ctx context.Context, req dto.BatchRequest) (res dto.BatchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReactivateMany")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	now := timezone.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	res.Successful = []string{}
	res.Failed = []dto.BatchFailure{}

	// Restoring a reservation re-checks its window against current blockers,
	// so the whole batch runs serializably like Create.
	err = s.txer.WithSerializableTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, id := range req.IDs {
			reservation, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return fmt.Errorf("failed to get reservation %s: %w", id, err)
			}

			if reservation.ID == constant.Empty {
				res.Failed = append(res.Failed, dto.BatchFailure{ID: id, Reason: "reservation not found"})

				continue
			}

			if !state.ActionsFor(model.Status(reservation.Status)).CanReactivate {
				res.Failed = append(res.Failed, dto.BatchFailure{
					ID:     id,
					Reason: fmt.Sprintf("cannot reactivate a %s reservation", reservation.Status),
				})

				continue
			}

			if reservation.CheckInDate.Before(startOfToday) {
				res.Failed = append(res.Failed, dto.BatchFailure{ID: id, Reason: "check-in date has already passed"})

				continue
			}

			blockers, err := s.repo.GetOverlappingTx(ctx, tx, reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate, reservation.ID)
			if err != nil {
				return fmt.Errorf("failed to scan for overlapping reservations: %w", err)
			}

			if len(blockers) > 0 {
				res.Failed = append(res.Failed, dto.BatchFailure{
					ID:     id,
					Reason: "room is no longer available for the original dates",
				})

				continue
			}

			changes := map[string]any{
				model.FieldStatus:        model.StatusPending.String(),
				model.FieldIsActive:      true,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}

			if err := s.repo.UpdateTx(ctx, tx, changes, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
				return fmt.Errorf("failed to reactivate reservation %s: %w", id, err)
			}

			if err := s.audit.Record(ctx, tx, id, constant.AuditEntityReservation, constant.AuditActionReactivate, user); err != nil {
				return err
			}

			res.Successful = append(res.Successful, id)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to reactivate reservations")

		return dto.BatchResponse{}, err
	}

	res.Success = len(res.Successful) > 0

	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range res.Successful {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return res, nil
}
