package users_test

import (
	"net/http"
	"testing"

	usersfeature "github.com/harvestchapel/rosterd/internal/app/features/users"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/indexes"
	"github.com/harvestchapel/rosterd/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	h := usersfeature.NewHandler(userstore.New(db), zap.NewNop())
	return usersfeature.Routes(h), testutil.NewFixtures(t, db)
}

func TestRoutesAreAdminOnly(t *testing.T) {
	router, _ := setup(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/"), testutil.VolunteerUser())
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestCreateAndList(t *testing.T) {
	router, _ := setup(t)
	admin := testutil.AdminUser()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]string{
		"username":  "ana",
		"password":  "sekret-pass",
		"full_name": "Ana Silva",
		"role":      "volunteer",
	})
	req = testutil.WithUser(req, admin)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"ana"`)

	list := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/"), admin)
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, list)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ana Silva")
	// Hash never leaves the server.
	if got := rec.Body.String(); len(got) > 0 && (contains(got, "password") || contains(got, "$2a$")) {
		t.Errorf("password material leaked: %s", got)
	}
}

func TestCreateRejectsShortPassword(t *testing.T) {
	router, _ := setup(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]string{
		"username":  "ana",
		"password":  "short",
		"full_name": "Ana Silva",
		"role":      "volunteer",
	})
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDeleteSelfIsRejected(t *testing.T) {
	router, fx := setup(t)
	ctx := testutil.TestContext(t)
	admin := fx.CreateAdmin(ctx, "Admin", "admin")

	req := testutil.NewRequest(http.MethodDelete, "/"+admin.ID.Hex())
	req = testutil.WithUser(req, testutil.AsTestUser(admin.ID, admin.FullName, admin.Role))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDeleteOther(t *testing.T) {
	router, fx := setup(t)
	ctx := testutil.TestContext(t)
	vol := fx.CreateVolunteer(ctx, "Ana Silva", "ana")

	req := testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/"+vol.ID.Hex()), testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	// Gone means gone.
	req = testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/"+vol.ID.Hex()), testutil.AdminUser())
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
