package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	paymentMocks "lodge/internal/domains/payment/mocks"
	"lodge/internal/domains/payment/model"
	"lodge/internal/domains/payment/service"
	gDto "lodge/shared/dto"
)

func TestGuard_HasPendingBalance(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *paymentMocks.MockPayment)
		want      bool
		wantErr   bool
	}{
		{
			name: "pending payment found",
			setupMock: func(repo *paymentMocks.MockPayment) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
						assert.Len(t, filter.Filters, 2)

						status, ok := filter.Filters[1].(gDto.Filter)
						assert.True(t, ok)
						assert.Equal(t, model.StatusPending, status.Value)

						return true, nil
					})
			},
			want: true,
		},
		{
			name: "all payments settled",
			setupMock: func(repo *paymentMocks.MockPayment) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			want: false,
		},
		{
			name: "repository error propagates",
			setupMock: func(repo *paymentMocks.MockPayment) {
				repo.EXPECT().
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

			repo := paymentMocks.NewMockPayment(ctrl)
			tt.setupMock(repo)

			guard := service.New(repo, mocks.NewOtel())

			pending, err := guard.HasPendingBalance(context.Background(), "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, pending)
		})
	}
}
