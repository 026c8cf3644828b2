package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/indexes"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"github.com/harvestchapel/rosterd/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) *userstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return userstore.New(db)
}

func TestCreateNormalizes(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	u, err := store.Create(ctx, models.User{
		Username: "  AnaSilva ",
		FullName: "  Ana   Silva ",
		Email:    " Ana@Example.COM ",
		Role:     "volunteer",
	}, "sekret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if u.Username != "anasilva" {
		t.Errorf("username: got %q", u.Username)
	}
	if u.FullName != "Ana Silva" {
		t.Errorf("full name: got %q", u.FullName)
	}
	if u.Email != "ana@example.com" {
		t.Errorf("email: got %q", u.Email)
	}
	if u.Status != "active" {
		t.Errorf("status: got %q, want active", u.Status)
	}
	if u.PasswordHash == "" || u.PasswordHash == "sekret-pass" {
		t.Error("password was not hashed")
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	mk := func() (models.User, error) {
		return store.Create(ctx, models.User{
			Username: "ana",
			FullName: "Ana Silva",
			Role:     "volunteer",
		}, "sekret-pass")
	}
	if _, err := mk(); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := mk(); !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Fatalf("got %v, want ErrDuplicateUsername", err)
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{
		Username: "ana",
		FullName: "Ana Silva",
		Role:     "superuser",
	}, "sekret-pass"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestVerifyPassword(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	u, err := store.Create(ctx, models.User{
		Username: "ana",
		FullName: "Ana Silva",
		Role:     "volunteer",
	}, "sekret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !store.VerifyPassword(&u, "sekret-pass") {
		t.Error("correct password rejected")
	}
	if store.VerifyPassword(&u, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestGetByUsernameCaseInsensitive(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{
		Username: "Ana",
		FullName: "Ana Silva",
		Role:     "volunteer",
	}, "sekret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByUsername(ctx, " ANA ")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestDelete(t *testing.T) {
	store := setup(t)
	ctx := testutil.TestContext(t)

	u, err := store.Create(ctx, models.User{
		Username: "ana",
		FullName: "Ana Silva",
		Role:     "volunteer",
	}, "sekret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, u.ID); !errors.Is(err, roster.ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, roster.ErrNotFound) {
		t.Errorf("deleting unknown id: got %v, want ErrNotFound", err)
	}
}
