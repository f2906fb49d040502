package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// Lifecycle side effects, applied within the caller's transaction.
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, roomID, status, actor string) error
	MarkForCleaningTx(ctx context.Context, tx *sqlx.Tx, roomID, actor string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, roomID, status, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.UpdateStatusTx")
	defer scope.End()

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	return repo.UpdateTx(ctx, tx, fields, shared.FilterByID(roomID, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// MarkForCleaningTx moves the room to cleaning and raises the amenity restock
// flags so housekeeping replenishes towels and soap before the next guest.
func (repo *repositoryImpl) MarkForCleaningTx(ctx context.Context, tx *sqlx.Tx, roomID, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.MarkForCleaningTx")
	defer scope.End()

	fields := map[string]any{
		model.FieldStatus:        model.StatusCleaning,
		model.FieldRestockTowels: true,
		model.FieldRestockSoap:   true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	return repo.UpdateTx(ctx, tx, fields, shared.FilterByID(roomID, model.FieldID, model.TableName)) //nolint:wrapcheck
}
