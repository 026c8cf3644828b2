// internal/app/store/schedules/schedulestore.go
package schedulestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

var (
	// ErrVersionConflict is returned when a write lost the optimistic-version
	// race against a concurrent writer. The caller reloads and retries.
	ErrVersionConflict = errors.New("schedule was modified concurrently")

	// ErrDuplicateDate is returned when creating a schedule for a date that
	// already has one.
	ErrDuplicateDate = errors.New("a schedule already exists for this date")
)

// WriteResult is what create/update hand back: the stored record, any
// non-fatal over-staffing warnings, and (for updates) the roles whose
// membership changed.
type WriteResult struct {
	Schedule     models.Schedule
	Warnings     []string
	ChangedRoles []string
}

// List returns all schedules, newest date first.
func (s *Store) List(ctx context.Context) ([]models.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Schedule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one schedule. Returns roster.ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Schedule, error) {
	var sc models.Schedule
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, roster.ErrNotFound
		}
		return nil, err
	}
	return &sc, nil
}

// Create validates date and day type, derives the canonical assignment set
// from the requirement table, and inserts the record.
func (s *Store) Create(ctx context.Context, date, dayType string, supplied []models.Assignment, createdBy primitive.ObjectID) (WriteResult, error) {
	date, err := roster.ParseDate(date)
	if err != nil {
		return WriteResult{}, err
	}
	day, err := roster.ParseDayType(dayType)
	if err != nil {
		return WriteResult{}, err
	}

	now := time.Now().UTC()
	assignments, warnings, err := roster.BuildAssignments(day, supplied, nil, now)
	if err != nil {
		return WriteResult{}, err
	}

	sc := models.Schedule{
		ID:          primitive.NewObjectID(),
		Date:        date,
		DayType:     day.String(),
		Assignments: assignments,
		Version:     1,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, sc); err != nil {
		if wafflemongo.IsDup(err) {
			return WriteResult{}, ErrDuplicateDate
		}
		return WriteResult{}, err
	}
	return WriteResult{Schedule: sc, Warnings: warnings}, nil
}

// Update fully replaces a schedule's date, day type, and assignment set.
// The role set is re-derived from the (possibly new) day type: responses for
// roles that no longer exist are discarded, newly required roles start
// empty, and retained (role, user) pairs keep the responses already given.
//
// The write is all-or-nothing: it filters on the version read here, so a
// concurrent writer surfaces as ErrVersionConflict before any mutation.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, date, dayType string, supplied []models.Assignment) (WriteResult, error) {
	date, err := roster.ParseDate(date)
	if err != nil {
		return WriteResult{}, err
	}
	day, err := roster.ParseDayType(dayType)
	if err != nil {
		return WriteResult{}, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return WriteResult{}, err
	}

	now := time.Now().UTC()
	assignments, warnings, err := roster.BuildAssignments(day, supplied, existing.Assignments, now)
	if err != nil {
		return WriteResult{}, err
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "version": existing.Version},
		bson.M{
			"$set": bson.M{
				"date":        date,
				"day_type":    day.String(),
				"assignments": assignments,
				"updated_at":  now,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return WriteResult{}, ErrDuplicateDate
		}
		return WriteResult{}, err
	}
	if res.MatchedCount == 0 {
		// Either the record vanished or someone else won the version race.
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
			return WriteResult{}, roster.ErrNotFound
		}
		return WriteResult{}, ErrVersionConflict
	}

	updated := *existing
	updated.Date = date
	updated.DayType = day.String()
	updated.Assignments = assignments
	updated.Version = existing.Version + 1
	updated.UpdatedAt = now

	return WriteResult{
		Schedule:     updated,
		Warnings:     warnings,
		ChangedRoles: roster.ChangedRoles(existing.Assignments, assignments),
	}, nil
}

// Delete removes the record and all nested assignment/response state.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return roster.ErrNotFound
	}
	return nil
}

// RecordResponse moves one assignee's response from pending to a terminal
// status. The whole transition is a single filtered update: the filter only
// matches while the caller is assigned to the role AND their response is
// still pending, so two concurrent calls for the same slot cannot both
// succeed, and an administrator's concurrent edit that unassigned the caller
// makes the filter miss rather than resurrecting a stale slot.
//
// Returns the updated schedule and the mutated assignment.
func (s *Store) RecordResponse(ctx context.Context, scheduleID primitive.ObjectID, role roster.RoleType, callerID primitive.ObjectID, status roster.ResponseStatus, reason string) (*models.Schedule, *models.Assignment, error) {
	if !status.Terminal() {
		return nil, nil, &roster.ValidationError{Field: "status", Msg: "must be accepted or declined"}
	}
	if status != roster.StatusDeclined {
		reason = "" // reason is meaningful only on a decline; ignored otherwise
	}

	now := time.Now().UTC()
	key := callerID.Hex()
	statusField := "responses." + key + ".status"

	filter := bson.M{
		"_id": scheduleID,
		"assignments": bson.M{"$elemMatch": bson.M{
			"role":      role.String(),
			"user_ids":  callerID,
			statusField: roster.StatusPending.String(),
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"assignments.$[a].responses." + key: models.Response{
				Status:     status.String(),
				Reason:     reason,
				RecordedAt: now,
			},
			"updated_at": now,
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"a.role": role.String()}},
	})

	res, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return nil, nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil, s.explainResponseMiss(ctx, scheduleID, role, callerID)
	}

	sc, err := s.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	for i := range sc.Assignments {
		if sc.Assignments[i].Role == role.String() {
			return sc, &sc.Assignments[i], nil
		}
	}
	return nil, nil, roster.ErrNotFound
}

// explainResponseMiss distinguishes why the atomic response filter did not
// match: missing schedule or role, caller not assigned, or an already
// terminal response.
func (s *Store) explainResponseMiss(ctx context.Context, scheduleID primitive.ObjectID, role roster.RoleType, callerID primitive.ObjectID) error {
	sc, err := s.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	for _, a := range sc.Assignments {
		if a.Role != role.String() {
			continue
		}
		for _, uid := range a.UserIDs {
			if uid == callerID {
				return roster.ErrAlreadyAnswered
			}
		}
		return roster.ErrNotAssigned
	}
	return roster.ErrNotFound
}
