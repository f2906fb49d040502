package service

import (
	"context"
	"fmt"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

// CheckAvailability reports whether a room is free for a half-open stay
// window [check_in, check_out). The same predicate runs inside the create and
// adjustment transactions; this read-only variant exists for clients probing
// before they commit to a booking.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, err := time.Parse(constant.DateOnlyFormat, req.CheckInDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid check-in date: %v", err)) // nolint:wrapcheck
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, req.CheckOutDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid check-out date: %v", err)) // nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return res, failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	blockers, err := s.repo.GetOverlapping(ctx, req.RoomID, checkIn, checkOut, req.ExcludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to scan for overlapping reservations")

		return res, fmt.Errorf("failed to scan for overlapping reservations: %w", err)
	}

	res.Available = len(blockers) == 0
	res.Conflicts = make([]dto.ReservationResponse, len(blockers))

	for i, blocker := range blockers {
		res.Conflicts[i].FromModel(blocker)
	}

	return res, nil
}
