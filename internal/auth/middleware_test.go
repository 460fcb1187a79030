package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/model"
)

func newGuardedEcho(svc *JWTService) *echo.Echo {
	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		identity, err := IdentityFrom(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"userId": identity.UserID,
			"role":   identity.Role,
		})
	}, Middleware(svc))
	return e
}

func TestMiddleware(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	svc := newTestService(t, clock)

	valid, err := svc.IssueToken(5, model.RoleUser)
	require.NoError(t, err)

	past := &fakeClock{t: issuedAt.Add(-2 * time.Hour)}
	pastSvc := newTestService(t, past)
	expired, err := pastSvc.IssueToken(5, model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_REQUIRED", wantMsg: apperrors.MsgTokenRequired},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_REQUIRED", wantMsg: apperrors.MsgTokenRequired},
		{name: "bearer without token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_REQUIRED", wantMsg: apperrors.MsgTokenRequired},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_INVALID", wantMsg: apperrors.MsgTokenInvalid},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_EXPIRED", wantMsg: apperrors.MsgTokenInvalid},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	e := newGuardedEcho(svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				var body apperrors.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
				assert.Equal(t, tt.wantMsg, body.Error)
				return
			}

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, 5, body["userId"])
			assert.Equal(t, string(model.RoleUser), body["role"])
		})
	}
}

func TestIdentityFrom_Unguarded(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := IdentityFrom(c)
	assert.ErrorIs(t, err, apperrors.ErrTokenMissing)
}
