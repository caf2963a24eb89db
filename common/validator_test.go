package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Amount float64 `json:"amount" validate:"required"`
}

func TestValidateAndDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid", `{"amount": 12.5}`, 0},
		{"malformed json", `{"amount":`, http.StatusBadRequest},
		{"missing field", `{}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var payload samplePayload

			appErr := ValidateAndDecode(req, &payload)

			if tc.wantCode == 0 {
				assert.Nil(t, appErr)
				assert.Equal(t, 12.5, payload.Amount)
				return
			}
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tc.wantCode, appErr.Code)
			}
		})
	}
}

func TestAppError_Send(t *testing.T) {
	rr := httptest.NewRecorder()

	NewAppError(http.StatusNotFound, "account not found", nil).Send(rr)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"code":404,"message":"account not found"}`, rr.Body.String())
}
