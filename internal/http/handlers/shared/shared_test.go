package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flipcart-next/internal/models"

	"github.com/gin-gonic/gin"
)

func TestUserIDRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := UserID(c); ok {
		t.Fatalf("expected no user before SetUserID")
	}
	SetUserID(c, models.EntityID("7"))
	id, ok := UserID(c)
	if !ok || id != "7" {
		t.Fatalf("unexpected user id: %q %v", id, ok)
	}
}

func TestUserIDRejectsWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(UserIDKey, uint(7))
	if _, ok := UserID(c); ok {
		t.Fatalf("expected non EntityID value to be rejected")
	}
}

func TestRespondFailHidesCauseWhenAsked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")

	RespondFail(c, http.StatusInternalServerError, "Failed to fetch cart data", errors.New("boom"), false)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want 500 got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"success":false,"message":"Failed to fetch cart data"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusUnauthorized, "invalid token", nil)
	if w.Code != http.StatusUnauthorized || w.Body.String() != `{"error":"invalid token"}` {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}
