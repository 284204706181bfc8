package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/ipo-auth/internal/model"
	"github.com/dtroode/ipo-auth/internal/testutil"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "domain error",
			err:        model.ErrEmailNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":"email_not_found","detail":"User email not found. Please check and try again."}`,
		},
		{
			name:       "echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":"http_error","detail":"Not Found"}`,
		},
		{
			name:       "echo method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"code":"http_error","detail":"Method Not Allowed"}`,
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pq: relation user_info does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":"internal","detail":"An unexpected error occurred."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(testutil.MakeNoopLogger())(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	ErrorHandler(testutil.MakeNoopLogger())(model.ErrUserNotFound, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
