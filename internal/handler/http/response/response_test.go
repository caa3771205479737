package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/report"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Employee created successfully", map[string]string{"id": "E1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"Employee created successfully","data":{"id":"E1"}}`, rec.Body.String())
}

func TestWriteJSON_EncodingFailureYieldsSingleValidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]interface{}{"ok": "yes", "bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	dec := json.NewDecoder(rec.Body)
	var got Response
	require.NoError(t, dec.Decode(&got))
	assert.False(t, got.Success)
	require.NotNil(t, got.Error)
	assert.Equal(t, "ENCODING_ERROR", got.Error.Code)
	assert.False(t, dec.More(), "body must hold exactly one JSON value")
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{validator.ValidationErrors{{Field: "id", Message: "required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{fmt.Errorf("create: %w", employee.ErrEmployeeIDExists), http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("get: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{attendance.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: disk full", report.ErrExportFailed), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrTokenRevoked, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var got Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.code, got.Error.Code)
		})
	}
}
