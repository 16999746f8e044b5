package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appraisal/internal/domain/auth"
)

func TestAuthAttachesUserFromBearerToken(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", RoleID: "r1", RoleName: auth.RoleHR}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got auth.UserContext
	var found bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("user not attached to context")
	}
	if got.UserID != "u1" || got.RoleName != auth.RoleHR {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestAuthLeavesInvalidTokenAnonymous(t *testing.T) {
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("invalid token should not attach a user")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthIgnoresMalformedHeader(t *testing.T) {
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("malformed header should not attach a user")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Token abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
