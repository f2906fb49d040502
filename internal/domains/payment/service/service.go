package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/internal/domains/payment/model"
	"lodge/internal/domains/payment/repository"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"

	"github.com/rs/zerolog/log"
)

// Guard answers the outstanding-balance question asked during the
// checked_in -> checked_out transition. Ledger computation lives elsewhere;
// only the pending-balance query matters to the reservation lifecycle.
type Guard interface {
	HasPendingBalance(ctx context.Context, reservationID string) (bool, error)
}

type guardImpl struct {
	repo repository.Payment
	otel otel.Otel
}

func New(repo repository.Payment, otel otel.Otel) Guard {
	return &guardImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *guardImpl) HasPendingBalance(ctx context.Context, reservationID string) (pending bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasPendingBalance")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Operator: gDto.FilterOperatorEq,
				Value:    reservationID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.TableName,
			},
		},
	}

	pending, err = s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservationID).Msg("failed to check pending payments")

		return false, fmt.Errorf("failed to check pending payments: %w", err)
	}

	return pending, nil
}
