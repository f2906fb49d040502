package dto_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		Guests: []dto.GuestRequest{
			{Name: "Ana", Age: 34, Document: "12345", Contact: "ana@example.com"},
		},
		Observations: "early arrival",
		Origin:       "walk-in",
	}

	reservation, err := req.ToModel("receptionist-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "room-1", reservation.RoomID)
	assert.Equal(t, model.StatusPending.String(), reservation.Status)
	assert.True(t, reservation.IsActive)
	assert.Equal(t, "2026-09-10", reservation.CheckInDate.Format("2006-01-02"))
	assert.Equal(t, "2026-09-12", reservation.CheckOutDate.Format("2006-01-02"))
	assert.Equal(t, "receptionist-1", reservation.CreatedBy)
	assert.JSONEq(t, `[{"name":"Ana","age":34,"document":"12345","contact":"ana@example.com"}]`, string(reservation.Guests))
}

func TestCreateReservationRequest_ToModel_ExplicitStatus(t *testing.T) {
	req := dto.CreateReservationRequest{
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		Status:       model.StatusConfirmed.String(),
	}

	reservation, err := req.ToModel("receptionist-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed.String(), reservation.Status)
}

func TestCreateReservationRequest_ToModel_BadDate(t *testing.T) {
	req := dto.CreateReservationRequest{
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		CheckInDate:  "10-09-2026",
		CheckOutDate: "2026-09-12",
	}

	_, err := req.ToModel("receptionist-1")

	assert.Error(t, err)
}

func TestUpdateReservationRequest_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.UpdateReservationRequest
		expected bool
	}{
		{
			name:     "zero value",
			req:      dto.UpdateReservationRequest{},
			expected: true,
		},
		{
			name:     "only status",
			req:      dto.UpdateReservationRequest{Status: "confirmed"},
			expected: false,
		},
		{
			name:     "only dates",
			req:      dto.UpdateReservationRequest{CheckOutDate: "2026-09-14"},
			expected: false,
		},
		{
			name:     "empty guest slice still counts as an edit",
			req:      dto.UpdateReservationRequest{Guests: []dto.GuestRequest{}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.IsEmpty())
		})
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	reservation := model.Reservation{
		ID:           "res-1",
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		Status:       model.StatusConfirmed.String(),
		IsActive:     true,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       types.JSONText(`[{"name":"Ana","age":34,"document":"","contact":""}]`),
		Origin:       "website",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	var res dto.ReservationResponse
	res.FromModel(reservation)

	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, model.StatusConfirmed.String(), res.Status)
	assert.Equal(t, checkIn.Format(time.RFC3339), res.CheckInDate)
	assert.Equal(t, checkOut.Format(time.RFC3339), res.CheckOutDate)
	assert.Len(t, res.Guests, 1)
	assert.Equal(t, "Ana", res.Guests[0].Name)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	models := []model.Reservation{
		{ID: "res-1", Status: model.StatusPending.String()},
		{ID: "res-2", Status: model.StatusConfirmed.String()},
	}

	var res dto.GetReservationsResponse
	res.FromModels(models, 21, 10)

	assert.Len(t, res.Reservations, 2)
	assert.Equal(t, 21, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}
