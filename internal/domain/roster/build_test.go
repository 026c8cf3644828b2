package roster_test

import (
	"testing"
	"time"

	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var buildNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func TestBuildAssignments_EmptyInput(t *testing.T) {
	got, warnings, err := roster.BuildAssignments(roster.Wednesday, nil, nil, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	wantRoles := []string{"preaching", "cleaning", "worship", "welcome"}
	if len(got) != len(wantRoles) {
		t.Fatalf("got %d assignments, want %d", len(got), len(wantRoles))
	}
	for i, role := range wantRoles {
		if got[i].Role != role {
			t.Errorf("[%d]: got role %q, want %q", i, got[i].Role, role)
		}
		if len(got[i].UserIDs) != 0 {
			t.Errorf("%s: expected empty user_ids", role)
		}
		if len(got[i].Responses) != 0 {
			t.Errorf("%s: expected empty responses", role)
		}
	}
}

func TestBuildAssignments_NewUsersStartPending(t *testing.T) {
	uid := primitive.NewObjectID()
	supplied := []models.Assignment{
		{Role: "preaching", UserIDs: []primitive.ObjectID{uid}},
	}

	got, _, err := roster.BuildAssignments(roster.Friday, supplied, nil, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}
	resp, ok := got[0].Responses[uid.Hex()]
	if !ok {
		t.Fatal("assigned user has no response entry")
	}
	if resp.Status != "pending" {
		t.Errorf("status: got %q, want %q", resp.Status, "pending")
	}
	if !resp.RecordedAt.Equal(buildNow) {
		t.Errorf("recorded_at: got %v, want %v", resp.RecordedAt, buildNow)
	}
}

func TestBuildAssignments_OverstaffingWarnsNotErrs(t *testing.T) {
	ids := []primitive.ObjectID{
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), primitive.NewObjectID(),
	}
	supplied := []models.Assignment{
		{Role: "cleaning", UserIDs: ids},
	}

	got, warnings, err := roster.BuildAssignments(roster.Wednesday, supplied, nil, buildNow)
	if err != nil {
		t.Fatalf("over-staffing must not be an error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0] != "cleaning: 4 assigned, 3 required" {
		t.Errorf("warning: got %q", warnings[0])
	}
	if len(got[1].UserIDs) != 4 {
		t.Errorf("all four assignees must be kept, got %d", len(got[1].UserIDs))
	}
}

func TestBuildAssignments_UnderstaffingIsVacancy(t *testing.T) {
	supplied := []models.Assignment{
		{Role: "cleaning", UserIDs: []primitive.ObjectID{primitive.NewObjectID()}},
	}
	_, warnings, err := roster.BuildAssignments(roster.Saturday, supplied, nil, buildNow)
	if err != nil {
		t.Fatalf("under-staffing must not be an error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("under-staffing must not warn, got %v", warnings)
	}
}

func TestBuildAssignments_DropsRolesOutsideDayType(t *testing.T) {
	supplied := []models.Assignment{
		{Role: "cleaning", UserIDs: []primitive.ObjectID{primitive.NewObjectID()}},
		{Role: "preaching", UserIDs: []primitive.ObjectID{primitive.NewObjectID()}},
	}

	got, _, err := roster.BuildAssignments(roster.Friday, supplied, nil, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}

	for _, a := range got {
		if a.Role == "cleaning" {
			t.Error("cleaning is not a friday role and must be dropped")
		}
	}
	if got[0].Role != "preaching" || got[1].Role != "door_service" {
		t.Errorf("got roles %q,%q; want preaching,door_service", got[0].Role, got[1].Role)
	}
	if len(got[1].UserIDs) != 0 {
		t.Error("door_service should start as a vacancy")
	}
}

func TestBuildAssignments_UnknownRole(t *testing.T) {
	supplied := []models.Assignment{{Role: "ushering"}}
	_, _, err := roster.BuildAssignments(roster.Wednesday, supplied, nil, buildNow)
	if !roster.IsValidation(err) {
		t.Errorf("expected ValidationError for unknown role, got %v", err)
	}
}

func TestBuildAssignments_DuplicateRole(t *testing.T) {
	supplied := []models.Assignment{
		{Role: "preaching"},
		{Role: "preaching"},
	}
	_, _, err := roster.BuildAssignments(roster.Wednesday, supplied, nil, buildNow)
	if !roster.IsValidation(err) {
		t.Errorf("expected ValidationError for duplicate role, got %v", err)
	}
}

func TestBuildAssignments_DedupesUserIDs(t *testing.T) {
	uid := primitive.NewObjectID()
	supplied := []models.Assignment{
		{Role: "worship", UserIDs: []primitive.ObjectID{uid, uid, uid}},
	}

	got, warnings, err := roster.BuildAssignments(roster.Wednesday, supplied, nil, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}
	if len(got[2].UserIDs) != 1 {
		t.Errorf("duplicate user ids must collapse, got %d", len(got[2].UserIDs))
	}
	if len(warnings) != 0 {
		t.Errorf("deduped set is not over-staffed, got %v", warnings)
	}
}

func TestBuildAssignments_RetainedUserKeepsResponse(t *testing.T) {
	kept := primitive.NewObjectID()
	dropped := primitive.NewObjectID()
	answered := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	previous := []models.Assignment{
		{
			Role:    "preaching",
			UserIDs: []primitive.ObjectID{kept, dropped},
			Responses: map[string]models.Response{
				kept.Hex():    {Status: "accepted", RecordedAt: answered},
				dropped.Hex(): {Status: "declined", Reason: "away", RecordedAt: answered},
			},
		},
	}
	supplied := []models.Assignment{
		{Role: "preaching", UserIDs: []primitive.ObjectID{kept}},
	}

	got, _, err := roster.BuildAssignments(roster.Friday, supplied, previous, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}

	resp := got[0].Responses[kept.Hex()]
	if resp.Status != "accepted" || !resp.RecordedAt.Equal(answered) {
		t.Errorf("retained user's response must survive, got %+v", resp)
	}
	if _, ok := got[0].Responses[dropped.Hex()]; ok {
		t.Error("removed user's response must be discarded")
	}
}

func TestBuildAssignments_DayTypeChangeDropsStaleRoles(t *testing.T) {
	cleaner := primitive.NewObjectID()
	previous, _, err := roster.BuildAssignments(roster.Wednesday, []models.Assignment{
		{Role: "cleaning", UserIDs: []primitive.ObjectID{cleaner}},
	}, nil, buildNow)
	if err != nil {
		t.Fatalf("seed build failed: %v", err)
	}

	// Re-derive the same record as a friday: cleaning/worship/welcome go away,
	// door_service appears empty.
	got, _, err := roster.BuildAssignments(roster.Friday, nil, previous, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}
	if got[0].Role != "preaching" || got[1].Role != "door_service" {
		t.Errorf("got roles %q,%q; want preaching,door_service", got[0].Role, got[1].Role)
	}
	if len(got[1].UserIDs) != 0 || len(got[1].Responses) != 0 {
		t.Error("door_service must be created empty")
	}
}

func TestChangedRoles(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	before := []models.Assignment{
		{Role: "preaching", UserIDs: []primitive.ObjectID{a}},
		{Role: "cleaning", UserIDs: []primitive.ObjectID{a, b}},
	}
	after := []models.Assignment{
		{Role: "preaching", UserIDs: []primitive.ObjectID{a}},
		{Role: "cleaning", UserIDs: []primitive.ObjectID{b, a}}, // same set, different order
		{Role: "door_service", UserIDs: []primitive.ObjectID{b}},
	}

	got := roster.ChangedRoles(before, after)
	if len(got) != 1 || got[0] != "door_service" {
		t.Errorf("got %v, want [door_service]", got)
	}
}

func TestCoverage(t *testing.T) {
	assignments, _, err := roster.BuildAssignments(roster.Wednesday, []models.Assignment{
		{Role: "cleaning", UserIDs: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}},
		{Role: "preaching", UserIDs: []primitive.ObjectID{primitive.NewObjectID()}},
	}, nil, buildNow)
	if err != nil {
		t.Fatalf("BuildAssignments failed: %v", err)
	}

	cov := roster.Coverage(roster.Wednesday, assignments)
	want := []roster.RoleCoverage{
		{Role: "preaching", Assigned: 1, Required: 1, Percent: 100},
		{Role: "cleaning", Assigned: 2, Required: 3, Percent: 66},
		{Role: "worship", Assigned: 0, Required: 3, Percent: 0},
		{Role: "welcome", Assigned: 0, Required: 1, Percent: 0},
	}
	if len(cov) != len(want) {
		t.Fatalf("got %d entries, want %d", len(cov), len(want))
	}
	for i := range want {
		if cov[i] != want[i] {
			t.Errorf("[%d]: got %+v, want %+v", i, cov[i], want[i])
		}
	}
}
