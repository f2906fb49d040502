package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/reservation/model"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error

	// GetOverlapping returns the active reservations whose half-open interval
	// [check_in_date, check_out_date) intersects [checkIn, checkOut), ordered
	// by check-in ascending so the first row is the nearest blocker. roomID
	// and excludeID may be empty.
	GetOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) ([]model.Reservation, error)
	GetOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) ([]model.Reservation, error) {
	return repo.GetAll(ctx, overlapParams(), OverlapFilter(roomID, checkIn, checkOut, excludeID)) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) ([]model.Reservation, error) {
	return repo.GetAllTx(ctx, tx, overlapParams(), OverlapFilter(roomID, checkIn, checkOut, excludeID)) //nolint:wrapcheck
}

func overlapParams() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCheckInDate,
		SortDir: gDto.SortDirAsc,
	}
}

// OverlapFilter builds the canonical half-open overlap predicate: an existing
// reservation conflicts iff check_in_date < :checkOut AND check_out_date >
// :checkIn. Boundary equality (back-to-back bookings) never conflicts.
func OverlapFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    model.BlockingStatuses(),
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_out",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLess,
			Value:    checkOut,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_in",
			Field:    model.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    checkIn,
			Table:    model.TableName,
		},
	}

	if roomID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
