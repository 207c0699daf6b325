package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newOrderTestContext(t *testing.T, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, w
}

func TestGetOrdersRejectsMissingAccountContext(t *testing.T) {
	c, w := newOrderTestContext(t, "/orders")

	GetOrders(nil)(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetOrdersRejectsMalformedAccountContext(t *testing.T) {
	c, w := newOrderTestContext(t, "/orders")
	c.Set("accountId", "not-an-object-id")

	GetOrders(nil)(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetOrderRejectsMalformedAccountContext(t *testing.T) {
	c, w := newOrderTestContext(t, "/orders/abc")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Set("accountId", 42)

	GetOrder(nil)(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
