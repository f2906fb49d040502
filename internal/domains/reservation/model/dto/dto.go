package dto

import (
	"encoding/json"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/state"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type GuestRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Age      int    `json:"age"      validate:"omitempty,gte=0,lte=120"`
	Document string `json:"document" validate:"omitempty,max=50"`
	Contact  string `json:"contact"  validate:"omitempty,max=100"`
}

type CreateReservationRequest struct {
	RoomID       string         `json:"room_id"        validate:"required,uuid"`
	CustomerID   string         `json:"customer_id"    validate:"required"`
	CheckInDate  string         `json:"check_in_date"  validate:"required"`
	CheckOutDate string         `json:"check_out_date" validate:"required"`
	Status       string         `json:"status"         validate:"omitempty,oneof=pending confirmed"`
	Guests       []GuestRequest `json:"guests"         validate:"omitempty,dive"`
	Observations string         `json:"observations"   validate:"omitempty,max=500"`
	Origin       string         `json:"origin"         validate:"omitempty,max=50"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Reservation{}, err
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Reservation{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	guests := make([]model.Guest, len(c.Guests))
	for i, g := range c.Guests {
		guests[i] = model.Guest(g)
	}

	guestsJSON, err := json.Marshal(guests)
	if err != nil {
		return model.Reservation{}, err
	}

	return model.Reservation{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		CustomerID:      c.CustomerID,
		Status:          status.String(),
		IsActive:        true,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		ReservationDate: timezone.Now(),
		Guests:          guestsJSON,
		Observations:    c.Observations,
		Origin:          c.Origin,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateReservationRequest struct {
	CheckInDate  string         `json:"check_in_date"  validate:"omitempty"`
	CheckOutDate string         `json:"check_out_date" validate:"omitempty"`
	Status       string         `json:"status"         validate:"omitempty,oneof=pending confirmed checked_in checked_out canceled"`
	Guests       []GuestRequest `json:"guests"         validate:"omitempty,dive"`
	Observations string         `db:"observations"     json:"observations" validate:"omitempty,max=500"`
	Origin       string         `db:"origin"           json:"origin"       validate:"omitempty,max=50"`
}

func (u *UpdateReservationRequest) IsEmpty() bool {
	return u.CheckInDate == constant.Empty &&
		u.CheckOutDate == constant.Empty &&
		u.Status == constant.Empty &&
		u.Guests == nil &&
		u.Observations == constant.Empty &&
		u.Origin == constant.Empty
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out canceled"`
}

type LateCheckoutRequest struct {
	NewTime string `json:"new_time" validate:"required"`
}

type ExtendStayRequest struct {
	NewCheckOutDate string `json:"new_check_out_date" validate:"required"`
}

type BatchRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BatchResponse struct {
	Success    bool           `json:"success"`
	Successful []string       `json:"successful"`
	Failed     []BatchFailure `json:"failed"`
}

type AvailabilityRequest struct {
	RoomID       string `json:"room_id"         validate:"required"`
	CheckInDate  string `json:"check_in_date"   validate:"required"`
	CheckOutDate string `json:"check_out_date"  validate:"required"`
	ExcludeID    string `json:"exclude_id"      validate:"omitempty"`
}

type AvailabilityResponse struct {
	Available bool                  `json:"available"`
	Conflicts []ReservationResponse `json:"conflicts"`
}

type ActionsResponse struct {
	Status  string        `json:"status"`
	Actions state.Actions `json:"actions"`
}

type ReservationResponse struct {
	ID                   string        `json:"id"`
	RoomID               string        `json:"room_id"`
	CustomerID           string        `json:"customer_id"`
	Status               string        `json:"status"`
	IsActive             bool          `json:"is_active"`
	CheckInDate          string        `json:"check_in_date"`
	CheckOutDate         string        `json:"check_out_date"`
	ReservationDate      string        `json:"reservation_date"`
	AppliedLateCheckout  bool          `json:"applied_late_checkout"`
	PendingPaymentDelete bool          `json:"pending_payment_delete"`
	Guests               []model.Guest `json:"guests"`
	Observations         string        `json:"observations"`
	Origin               string        `json:"origin"`
	Reason               string        `json:"reason"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(res model.Reservation) {
	r.ID = res.ID
	r.RoomID = res.RoomID
	r.CustomerID = res.CustomerID
	r.Status = res.Status
	r.IsActive = res.IsActive
	r.CheckInDate = res.CheckInDate.Format(time.RFC3339)
	r.CheckOutDate = res.CheckOutDate.Format(time.RFC3339)
	r.ReservationDate = res.ReservationDate.Format(time.RFC3339)
	r.AppliedLateCheckout = res.AppliedLateCheckout
	r.PendingPaymentDelete = res.PendingPaymentDelete
	r.Observations = res.Observations
	r.Origin = res.Origin
	r.Reason = res.Reason

	if len(res.Guests) > 0 {
		// best effort, malformed payloads surface as an empty list
		_ = json.Unmarshal(res.Guests, &r.Guests)
	}

	r.Metadata.FromModel(res.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
