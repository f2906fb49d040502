package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/internal/domains/audit/model"
	"lodge/internal/domains/audit/repository"
	"lodge/shared/constant"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Recorder writes the audit trail. A nil tx records outside any transaction;
// otherwise the record commits or rolls back with the caller's mutation.
type Recorder interface {
	Record(ctx context.Context, tx *sqlx.Tx, entityID, entityType, action, performedBy string) error
}

type recorderImpl struct {
	repo repository.Audit
	otel otel.Otel
}

func New(repo repository.Audit, otel otel.Otel) Recorder {
	return &recorderImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *recorderImpl) Record(ctx context.Context, tx *sqlx.Tx, entityID, entityType, action, performedBy string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry := model.AuditLog{
		ID:          uuid.NewString(),
		EntityID:    entityID,
		EntityType:  entityType,
		Action:      action,
		PerformedBy: performedBy,
		CreatedAt:   timezone.Now(),
	}

	if tx != nil {
		err = s.repo.InsertTx(ctx, tx, entry)
	} else {
		err = s.repo.Insert(ctx, entry)
	}

	if err != nil {
		log.Error().Err(err).Str("entity_id", entityID).Str("action", action).Msg("failed to write audit record")

		return fmt.Errorf("failed to write audit record: %w", err)
	}

	return nil
}
