package service

import (
	"context"
	"fmt"
	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	auditService "lodge/internal/domains/audit/service"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/repository"
	"lodge/internal/domains/reservation/state"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/internal/events"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) error
	AvailableActions(ctx context.Context, id string) (dto.ActionsResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	ApplyLateCheckout(ctx context.Context, req dto.LateCheckoutRequest, id string) error
	ExtendStay(ctx context.Context, req dto.ExtendStayRequest, id string) error
	DeactivateMany(ctx context.Context, req dto.BatchRequest) (dto.BatchResponse, error)
	ReactivateMany(ctx context.Context, req dto.BatchRequest) (dto.BatchResponse, error)
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepo.Room
	machine  *state.Machine
	audit    auditService.Recorder
	notifier events.Notifier
	txer     postgres.Txer
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	machine *state.Machine,
	audit auditService.Recorder,
	notifier events.Notifier,
	txer postgres.Txer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		machine:  machine,
		audit:    audit,
		notifier: notifier,
		txer:     txer,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !reservation.CheckInDate.Before(reservation.CheckOutDate) {
		return res, failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.BadRequestFromString("room is not active") // nolint:wrapcheck
	}

	// The overlap scan and the insert share one serializable transaction so
	// two concurrent creates for the same window cannot both read "no
	// blockers" and both commit.
	err = s.txer.WithSerializableTransaction(ctx, func(tx *sqlx.Tx) error {
		blockers, err := s.repo.GetOverlappingTx(ctx, tx, reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate, constant.Empty)
		if err != nil {
			return fmt.Errorf("failed to scan for overlapping reservations: %w", err)
		}

		if len(blockers) > 0 {
			return failure.SchedulingConflict(blockers[0].CheckInDate.Format(constant.DateOnlyFormat)) // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		if err := s.roomRepo.UpdateStatusTx(ctx, tx, reservation.RoomID, roomModel.StatusReserved, user); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		return s.audit.Record(ctx, tx, reservation.ID, constant.AuditEntityReservation, constant.AuditActionCreate, user)
	})
	if err != nil {
		if !failure.IsClientError(err) {
			log.Error().Err(err).Msg("failed to create reservation")
		}

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.ReservationCreated(c, reservation)
		s.notifier.AvailabilityChanged(c, reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// getByID loads a reservation or returns a not-found failure.
func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// invalidate drops the item cache for id plus the list and count caches.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(c, s.cache, cacheCountReservation)
}
