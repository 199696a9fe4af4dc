package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/middleware"
)

// newTestContext builds an echo context for handler tests. A non-zero
// userID is injected into the request context the way the auth
// middleware would.
func newTestContext(e *echo.Echo, method, target, body string, userID int32) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if userID != 0 {
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
