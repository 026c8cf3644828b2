package login_test

import (
	"net/http"
	"testing"

	loginfeature "github.com/harvestchapel/rosterd/internal/app/features/login"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/auth"
	"github.com/harvestchapel/rosterd/internal/app/system/indexes"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (http.Handler, *userstore.Store) {
	t.Helper()
	if err := auth.InitSessionStore("test-session-key-0123456789ABCDEF", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}

	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	store := userstore.New(db)
	h := loginfeature.NewHandler(store, zap.NewNop())
	return loginfeature.Routes(h), store
}

func createUser(t *testing.T, store *userstore.Store, username, password, status string) models.User {
	t.Helper()
	u, err := store.Create(testutil.TestContext(t), models.User{
		Username: username,
		FullName: "Ana Silva",
		Role:     "volunteer",
		Status:   status,
	}, password)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestLoginSuccess(t *testing.T) {
	router, store := setup(t)
	createUser(t, store, "ana", "sekret-pass", "active")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "ana",
		"password": "sekret-pass",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"ana"`)

	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == auth.SessionName {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie set on login")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	router, store := setup(t)
	createUser(t, store, "ana", "sekret-pass", "active")

	// Wrong password and unknown user must be indistinguishable.
	for _, body := range []map[string]string{
		{"username": "ana", "password": "wrong"},
		{"username": "nobody", "password": "sekret-pass"},
	} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/login", body)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusUnauthorized)
		rec.AssertContains(t, "invalid username or password")
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	router, store := setup(t)
	createUser(t, store, "ana", "sekret-pass", "disabled")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "ana",
		"password": "sekret-pass",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestMe(t *testing.T) {
	router, store := setup(t)
	u := createUser(t, store, "ana", "sekret-pass", "active")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/me"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/me"),
		testutil.AsTestUser(u.ID, u.FullName, u.Role))
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ana Silva")
}
