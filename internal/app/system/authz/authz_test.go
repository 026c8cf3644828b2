package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harvestchapel/rosterd/internal/app/system/auth"
	"github.com/harvestchapel/rosterd/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx(t *testing.T) {
	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	role, _, _, ok := authz.UserCtx(anon)
	if ok || role != "visitor" {
		t.Errorf("anonymous: got role=%q ok=%v, want visitor/false", role, ok)
	}

	id := primitive.NewObjectID()
	req := auth.WithUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.SessionUser{ID: id.Hex(), Name: "Ana", Role: "Admin"})
	role, name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true for valid session user")
	}
	if role != "admin" {
		t.Errorf("role: got %q, want admin (lowercased)", role)
	}
	if name != "Ana" {
		t.Errorf("name: got %q", name)
	}
	if userID != id {
		t.Errorf("user id: got %s, want %s", userID.Hex(), id.Hex())
	}
}

func TestUserCtxMalformedIDFailsClosed(t *testing.T) {
	req := auth.WithUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.SessionUser{ID: "not-an-object-id", Role: "admin"})
	_, _, _, ok := authz.UserCtx(req)
	if ok {
		t.Error("malformed session id must not authenticate")
	}
	if authz.IsAdmin(req) {
		t.Error("IsAdmin must fail closed on malformed id")
	}
}
