package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with the given role. The password hash is a
// throwaway; login tests create their users through the store instead.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, username, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        username + "@test.local",
		Role:         role,
		PasswordHash: "x",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, username, "admin")
}

// CreateVolunteer creates a test volunteer user.
func (f *Fixtures) CreateVolunteer(ctx context.Context, fullName, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, username, "volunteer")
}

// CreateSchedule inserts a schedule document directly, bypassing the store's
// derivation logic. Assignments are taken as given.
func (f *Fixtures) CreateSchedule(ctx context.Context, date, dayType string, assignments []models.Assignment, createdBy primitive.ObjectID) models.Schedule {
	f.t.Helper()

	now := time.Now().UTC()
	sc := models.Schedule{
		ID:          primitive.NewObjectID(),
		Date:        date,
		DayType:     dayType,
		Assignments: assignments,
		Version:     1,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("schedules").InsertOne(ctx, sc); err != nil {
		f.t.Fatalf("failed to create test schedule: %v", err)
	}
	return sc
}
