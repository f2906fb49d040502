package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	pgMocks "lodge/infras/postgres/mocks"
	auditMocks "lodge/internal/domains/audit/mocks"
	paymentMocks "lodge/internal/domains/payment/mocks"
	resMocks "lodge/internal/domains/reservation/mocks"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/service"
	"lodge/internal/domains/reservation/state"
	roomMocks "lodge/internal/domains/room/mocks"
	eventMocks "lodge/internal/events/mocks"
	cacheMocks "lodge/shared/cache/mocks"
)

func TestReservationService_Update(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		req       dto.UpdateReservationRequest
		setupMock func(m *serviceMocks, stored model.Reservation)
		wantErr   bool
	}{
		{
			name:      "empty request",
			current:   model.StatusPending.String(),
			req:       dto.UpdateReservationRequest{},
			setupMock: func(m *serviceMocks, stored model.Reservation) {},
			wantErr:   true,
		},
		{
			name:    "identical values are a no-op",
			current: model.StatusPending.String(),
			req: dto.UpdateReservationRequest{
				CheckInDate:  "2026-09-10",
				CheckOutDate: "2026-09-12",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: false,
		},
		{
			name:    "observations edit",
			current: model.StatusPending.String(),
			req: dto.UpdateReservationRequest{
				Observations: "guest arrives after midnight",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				gomock.InOrder(
					m.repo.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(stored, nil),
					m.repo.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(stored, nil),
				)

				m.txer.EXPECT().
					WithTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, _ any) error {
						assert.Equal(t, "guest arrives after midnight", changes[model.FieldObservations])
						assert.NotContains(t, changes, model.FieldStatus)

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any(), "res-1", gomock.Any(), gomock.Any(), "test-user-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "status change runs through the state machine",
			current: model.StatusPending.String(),
			req: dto.UpdateReservationRequest{
				Status: model.StatusConfirmed.String(),
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				gomock.InOrder(
					m.repo.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(stored, nil),
					m.repo.EXPECT().
						Get(gomock.Any(), gomock.Any()).
						Return(stored, nil),
				)

				m.txer.EXPECT().
					WithTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, _ any) error {
						assert.Equal(t, model.StatusConfirmed.String(), changes[model.FieldStatus])
						assert.Equal(t, true, changes[model.FieldIsActive])

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any(), "res-1", gomock.Any(), gomock.Any(), "test-user-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "checked_in reservation rejects non-status edits",
			current: model.StatusCheckedIn.String(),
			req: dto.UpdateReservationRequest{
				Observations: "late edit",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:    "date change re-runs the overlap scan",
			current: model.StatusConfirmed.String(),
			req: dto.UpdateReservationRequest{
				CheckOutDate: "2026-09-15",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				m.txer.EXPECT().
					WithSerializableTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				blocker := activeReservation("other", model.StatusConfirmed.String(), date("2026-09-13"), date("2026-09-16"))

				m.repo.EXPECT().
					GetOverlappingTx(gomock.Any(), gomock.Any(), "room-1", date("2026-09-10"), date("2026-09-15"), "res-1").
					Return([]model.Reservation{blocker}, nil)
			},
			wantErr: true,
		},
		{
			name:    "window inverted by the edit",
			current: model.StatusPending.String(),
			req: dto.UpdateReservationRequest{
				CheckOutDate: "2026-09-09",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:    "unparseable check-out date",
			current: model.StatusPending.String(),
			req: dto.UpdateReservationRequest{
				CheckOutDate: "next friday",
			},
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestService(ctrl)

			stored := activeReservation("res-1", tt.current, date("2026-09-10"), date("2026-09-12"))
			tt.setupMock(m, stored)

			err := svc.Update(testCtx(), tt.req, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// When the post-commit reload fails, the change notification must still carry
// the values that were written, not the pre-update copy.
func TestReservationService_Update_ReloadFailureNotifiesWrittenValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := resMocks.NewMockReservation(ctrl)
	roomRepo := roomMocks.NewMockRoom(ctrl)
	payments := paymentMocks.NewMockGuard(ctrl)
	audit := auditMocks.NewMockRecorder(ctrl)
	notifier := eventMocks.NewMockNotifier(ctrl)
	txer := pgMocks.NewMockTxer(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, roomRepo, state.NewMachine(roomRepo, payments), audit, notifier, txer, cfg, cache, mocks.NewOtel())

	stored := activeReservation("res-1", model.StatusPending.String(), date("2026-09-10"), date("2026-09-12"))

	gomock.InOrder(
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil),
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, errors.New("connection reset by peer")),
	)

	txer.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(passthroughTx)

	repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	audit.EXPECT().
		Record(gomock.Any(), gomock.Any(), "res-1", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	notified := make(chan model.Reservation, 1)

	notifier.EXPECT().
		ReservationChanged(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, reservation model.Reservation) {
			notified <- reservation
		})

	err := svc.Update(testCtx(), dto.UpdateReservationRequest{Observations: "guest arrives after midnight"}, "res-1")
	assert.NoError(t, err)

	select {
	case reservation := <-notified:
		assert.Equal(t, "res-1", reservation.ID)
		assert.Equal(t, "guest arrives after midnight", reservation.Observations)
		assert.Equal(t, model.StatusPending.String(), reservation.Status)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}
