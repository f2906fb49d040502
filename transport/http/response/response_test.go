package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/shared/failure"
	"lodge/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure message reaches the client verbatim",
			err:      failure.BadRequestFromString("update request cannot be empty"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"update request cannot be empty"}`,
		},
		{
			name:     "wrapped failure keeps its code and drops the wrapping prefix",
			err:      fmt.Errorf("failed to update reservation: %w", failure.SchedulingConflict("2026-09-13")),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"room is already booked from 2026-09-13"}`,
		},
		{
			name:     "driver error is masked with the generic message",
			err:      errors.New(`pq: password authentication failed for user "lodge"`),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"something went wrong, please try again later"}`,
		},
		{
			name:     "wrapped infrastructure error is masked too",
			err:      fmt.Errorf("failed to get reservation: %w", errors.New("connection reset by peer")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"something went wrong, please try again later"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			assert.NotContains(t, recorder.Body.String(), "pq:")
		})
	}
}
