package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"quiz-platform/internal/models"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestPlanReconcileKeepUpdateInsertDelete(t *testing.T) {
	existing := []string{"A", "B", "C"}
	incoming := []models.QuestionInput{
		{ID: "B", QuestionText: "updated B", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		{QuestionText: "brand new", Options: []string{"x", "y"}, CorrectAnswer: "y"},
	}

	plan := planReconcile(existing, incoming, sequentialIDs("new"))

	if len(plan.updates) != 1 || plan.updates[0].ID != "B" {
		t.Fatalf("expected one update for B, got %+v", plan.updates)
	}
	if len(plan.inserts) != 1 || plan.inserts[0].ID != "new1" {
		t.Fatalf("expected one insert with fresh id, got %+v", plan.inserts)
	}
	wantDelete := []string{"A", "C"}
	if !reflect.DeepEqual(plan.toDelete, wantDelete) {
		t.Errorf("toDelete = %v, want %v", plan.toDelete, wantDelete)
	}
	wantOrder := []string{"B", "new1"}
	if !reflect.DeepEqual(plan.order, wantOrder) {
		t.Errorf("order = %v, want %v", plan.order, wantOrder)
	}
}

func TestPlanReconcilePreservesSubmittedOrder(t *testing.T) {
	existing := []string{"A", "B", "C"}
	incoming := []models.QuestionInput{
		{QuestionText: "new first", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		{ID: "C", QuestionText: "c", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		{ID: "A", QuestionText: "a", Options: []string{"x", "y"}, CorrectAnswer: "x"},
	}

	plan := planReconcile(existing, incoming, sequentialIDs("new"))

	wantOrder := []string{"new1", "C", "A"}
	if !reflect.DeepEqual(plan.order, wantOrder) {
		t.Errorf("order = %v, want %v", plan.order, wantOrder)
	}
	if !reflect.DeepEqual(plan.toDelete, []string{"B"}) {
		t.Errorf("toDelete = %v, want [B]", plan.toDelete)
	}
}

func TestPlanReconcileForeignIDBecomesInsert(t *testing.T) {
	// An id the quiz never referenced must not be treated as an update, so a
	// stray id for another quiz can never be written or deleted through here.
	existing := []string{"A"}
	incoming := []models.QuestionInput{
		{ID: "other-quiz-question", QuestionText: "q", Options: []string{"x", "y"}, CorrectAnswer: "x"},
	}

	plan := planReconcile(existing, incoming, sequentialIDs("new"))

	if len(plan.updates) != 0 {
		t.Fatalf("expected no updates, got %+v", plan.updates)
	}
	if len(plan.inserts) != 1 || plan.inserts[0].ID != "new1" {
		t.Fatalf("expected insert with fresh id, got %+v", plan.inserts)
	}
	if !reflect.DeepEqual(plan.toDelete, []string{"A"}) {
		t.Errorf("toDelete = %v, want [A]", plan.toDelete)
	}
}

func TestPlanReconcileEmptyIncomingDeletesAll(t *testing.T) {
	plan := planReconcile([]string{"A", "B"}, []models.QuestionInput{}, sequentialIDs("new"))

	if len(plan.updates) != 0 || len(plan.inserts) != 0 {
		t.Fatalf("expected no updates or inserts, got %+v / %+v", plan.updates, plan.inserts)
	}
	if !reflect.DeepEqual(plan.toDelete, []string{"A", "B"}) {
		t.Errorf("toDelete = %v, want [A B]", plan.toDelete)
	}
	if len(plan.order) != 0 {
		t.Errorf("order = %v, want empty", plan.order)
	}
}

func TestPlanReconcileNilIncomingKeepsStoredSet(t *testing.T) {
	// A metadata-only update body has no questions field at all; renaming a
	// quiz must not touch its question documents.
	var in models.QuizInput
	if err := json.Unmarshal([]byte(`{"title":"renamed"}`), &in); err != nil {
		t.Fatalf("decoding body: %v", err)
	}

	plan := planReconcile([]string{"A", "B", "C"}, in.Questions, sequentialIDs("new"))

	if len(plan.toDelete) != 0 {
		t.Fatalf("toDelete = %v, want none", plan.toDelete)
	}
	if len(plan.updates) != 0 || len(plan.inserts) != 0 {
		t.Fatalf("expected no updates or inserts, got %+v / %+v", plan.updates, plan.inserts)
	}
	if !reflect.DeepEqual(plan.order, []string{"A", "B", "C"}) {
		t.Errorf("order = %v, want stored order preserved", plan.order)
	}
}
