package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
)

func TestReservationService_ApplyLateCheckout(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		newTime   string
		setupMock func(m *serviceMocks, stored model.Reservation)
		wantErr   bool
	}{
		{
			name:    "push checkout to the evening",
			current: model.StatusCheckedIn.String(),
			newTime: "18:00",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				m.txer.EXPECT().
					WithSerializableTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				m.repo.EXPECT().
					GetOverlappingTx(gomock.Any(), gomock.Any(), "room-1", stored.CheckOutDate, gomock.Any(), "res-1").
					Return([]model.Reservation{}, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, _ any) error {
						assert.Equal(t, true, changes[model.FieldAppliedLateCheckout])

						newCheckOut, ok := changes[model.FieldCheckOutDate].(time.Time)
						assert.True(t, ok)
						assert.Equal(t, 18, newCheckOut.Hour())
						assert.Equal(t, stored.CheckOutDate.Day(), newCheckOut.Day())

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any(), "res-1", gomock.Any(), gomock.Any(), "test-user-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "extension window already taken",
			current: model.StatusCheckedIn.String(),
			newTime: "18:00",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				m.txer.EXPECT().
					WithSerializableTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				blocker := activeReservation("next-guest", model.StatusConfirmed.String(), date("2026-09-12"), date("2026-09-14"))

				m.repo.EXPECT().
					GetOverlappingTx(gomock.Any(), gomock.Any(), "room-1", stored.CheckOutDate, gomock.Any(), "res-1").
					Return([]model.Reservation{blocker}, nil)
			},
			wantErr: true,
		},
		{
			name:    "new time not later than current checkout",
			current: model.StatusCheckedIn.String(),
			newTime: "00:00",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:    "pending reservation cannot adjust its stay",
			current: model.StatusPending.String(),
			newTime: "18:00",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:      "malformed time",
			current:   model.StatusCheckedIn.String(),
			newTime:   "6pm",
			setupMock: func(m *serviceMocks, stored model.Reservation) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestService(ctrl)

			stored := activeReservation("res-1", tt.current, date("2026-09-10"), date("2026-09-12"))
			tt.setupMock(m, stored)

			err := svc.ApplyLateCheckout(testCtx(), dto.LateCheckoutRequest{NewTime: tt.newTime}, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_ExtendStay(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		newCheckOut string
		setupMock   func(m *serviceMocks, stored model.Reservation)
		wantErr     bool
		wantInErr   string
	}{
		{
			name:        "extend by two nights",
			current:     model.StatusCheckedIn.String(),
			newCheckOut: "2026-09-14",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				m.txer.EXPECT().
					WithSerializableTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				m.repo.EXPECT().
					GetOverlappingTx(gomock.Any(), gomock.Any(), "room-1", date("2026-09-12"), date("2026-09-14"), "res-1").
					Return([]model.Reservation{}, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, _ any) error {
						assert.Equal(t, date("2026-09-14"), changes[model.FieldCheckOutDate])
						assert.NotContains(t, changes, model.FieldAppliedLateCheckout)

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any(), "res-1", gomock.Any(), gomock.Any(), "test-user-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:        "conflict names the blocking check-in date",
			current:     model.StatusConfirmed.String(),
			newCheckOut: "2026-09-15",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				m.txer.EXPECT().
					WithSerializableTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(passthroughTx)

				blocker := activeReservation("next-guest", model.StatusConfirmed.String(), date("2026-09-13"), date("2026-09-16"))

				m.repo.EXPECT().
					GetOverlappingTx(gomock.Any(), gomock.Any(), "room-1", date("2026-09-12"), date("2026-09-15"), "res-1").
					Return([]model.Reservation{blocker}, nil)
			},
			wantErr:   true,
			wantInErr: "2026-09-13",
		},
		{
			name:        "new date not later than current checkout",
			current:     model.StatusCheckedIn.String(),
			newCheckOut: "2026-09-11",
			setupMock: func(m *serviceMocks, stored model.Reservation) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:        "pending reservation cannot adjust its stay",
			current:     model.StatusPending.String(),
			newCheckOut: "2026-09-14",
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

			err := svc.ExtendStay(testCtx(), dto.ExtendStayRequest{NewCheckOutDate: tt.newCheckOut}, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantInErr != "" {
					assert.Contains(t, err.Error(), tt.wantInErr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
