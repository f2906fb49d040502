package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	auditMocks "lodge/internal/domains/audit/mocks"
	resMocks "lodge/internal/domains/reservation/mocks"
	resModel "lodge/internal/domains/reservation/model"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
)

type roomServiceMocks struct {
	repo    *roomMocks.MockRoom
	resRepo *resMocks.MockReservation
	audit   *auditMocks.MockRecorder
	cache   *cacheMocks.MockRedisCache
	s3      *s3Mocks.MockS3
}

func newRoomService(ctrl *gomock.Controller) (service.Room, *roomServiceMocks) {
	m := &roomServiceMocks{
		repo:    roomMocks.NewMockRoom(ctrl),
		resRepo: resMocks.NewMockReservation(ctrl),
		audit:   auditMocks.NewMockRecorder(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		s3:      s3Mocks.NewMockS3(ctrl),
	}

	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.resRepo, m.audit, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

func housekeepingCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestRoomService_MarkCleaned(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *roomServiceMocks)
		wantErr   bool
	}{
		{
			name: "cleaning room becomes available and restock flags reset",
			setupMock: func(m *roomServiceMocks) {
				room := model.Room{
					ID:            "room-1",
					Status:        model.StatusCleaning,
					RestockTowels: true,
					RestockSoap:   true,
					Active:        true,
				}

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, changes map[string]any, _ any) error {
						assert.Equal(t, model.StatusAvailable, changes[model.FieldStatus])
						assert.Equal(t, false, changes[model.FieldRestockTowels])
						assert.Equal(t, false, changes[model.FieldRestockSoap])

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any(), "room-1", constant.AuditEntityRoom, constant.AuditActionUpdateStatus, "staff-1").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room not awaiting cleaning",
			setupMock: func(m *roomServiceMocks) {
				room := model.Room{ID: "room-1", Status: model.StatusOccupied, Active: true}

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr: true,
		},
		{
			name: "room not found",
			setupMock: func(m *roomServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newRoomService(ctrl)
			tt.setupMock(m)

			err := svc.MarkCleaned(housekeepingCtx(), "room-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *roomServiceMocks)
		wantErr   bool
	}{
		{
			name: "room without active reservations",
			setupMock: func(m *roomServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.resRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room with active reservations is protected",
			setupMock: func(m *roomServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.resRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "room not found",
			setupMock: func(m *roomServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "reservation lookup fails",
			setupMock: func(m *roomServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.resRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newRoomService(ctrl)
			tt.setupMock(m)

			err := svc.Delete(housekeepingCtx(), "room-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRoomService(ctrl)

	room := model.Room{ID: "room-1", Name: "101", Status: model.StatusAvailable, Active: true}

	gomock.InOrder(
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")),
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil),
	)

	res, err := svc.Get(housekeepingCtx(), "room-1")

	assert.NoError(t, err)
	assert.Equal(t, "room-1", res.ID)
	assert.Equal(t, model.StatusAvailable, res.Status)
}

func TestBlockingStatuses(t *testing.T) {
	statuses := resModel.BlockingStatuses()

	assert.ElementsMatch(t, []string{"pending", "confirmed", "checked_in"}, statuses)
	assert.NotContains(t, statuses, "checked_out")
	assert.NotContains(t, statuses, "canceled")
}
