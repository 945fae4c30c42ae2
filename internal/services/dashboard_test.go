package services

import (
	"testing"

	"github.com/taskhive-dev/taskhive/internal/types"
)

func TestDashboardStatsEmpty(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")

	stats, err := GetDashboardStats(gdb, alice.ID)

	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalProjects != 0 || stats.TasksInProgress != 0 || stats.CompletedTasks != 0 {
		t.Fatalf("expected all-zero stats, got %+v", stats)
	}

	if len(stats.TasksByStatus) != 3 {
		t.Fatalf("expected all three status buckets, got %d", len(stats.TasksByStatus))
	}
}

func TestDashboardStatsCountsReachableTasks(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")

	owned := createProject(t, gdb, alice.ID, "Launch")
	shared := createProject(t, gdb, bob.ID, "Docs")
	foreign := createProject(t, gdb, bob.ID, "Private")

	if err := AttachMember(gdb, shared.ID, alice.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	createTask(t, gdb, owned.ID, "a", types.TaskStatusTodo)
	createTask(t, gdb, owned.ID, "b", types.TaskStatusTodo)
	createTask(t, gdb, owned.ID, "c", types.TaskStatusInProgress)
	createTask(t, gdb, owned.ID, "d", types.TaskStatusDone)
	createTask(t, gdb, shared.ID, "e", types.TaskStatusDone)
	createTask(t, gdb, foreign.ID, "f", types.TaskStatusDone)

	stats, err := GetDashboardStats(gdb, alice.ID)

	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalProjects != 1 {
		t.Fatalf("expected 1 owned project, got %d", stats.TotalProjects)
	}

	if stats.TasksInProgress != 1 {
		t.Fatalf("expected 1 in-progress task, got %d", stats.TasksInProgress)
	}

	if stats.CompletedTasks != 2 {
		t.Fatalf("expected 2 completed tasks, got %d", stats.CompletedTasks)
	}

	byName := map[string]int64{}

	for _, bucket := range stats.TasksByStatus {
		byName[bucket.Name] = bucket.Value
	}

	if byName["Todo"] != 2 || byName["In Progress"] != 1 || byName["Done"] != 2 {
		t.Fatalf("unexpected grouping %+v", stats.TasksByStatus)
	}
}

func TestDashboardTotalsEqualSumOfStatuses(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")

	owned := createProject(t, gdb, alice.ID, "Launch")
	shared := createProject(t, gdb, bob.ID, "Docs")

	if err := AttachMember(gdb, shared.ID, alice.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	statuses := []string{
		types.TaskStatusTodo,
		types.TaskStatusInProgress,
		types.TaskStatusDone,
		types.TaskStatusDone,
		types.TaskStatusTodo,
	}

	for i, status := range statuses {
		projectID := owned.ID
		if i%2 == 1 {
			projectID = shared.ID
		}
		createTask(t, gdb, projectID, status, status)
	}

	stats, err := GetDashboardStats(gdb, alice.ID)

	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	var sum int64

	for _, bucket := range stats.TasksByStatus {
		sum += bucket.Value
	}

	if sum != int64(len(statuses)) {
		t.Fatalf("status buckets sum to %d, want %d", sum, len(statuses))
	}
}

func TestDashboardNoDoubleCounting(t *testing.T) {
	gdb := testDB(t)

	// Alice owns the project and holds an explicit membership row; the
	// task must still be counted exactly once.
	alice := createUser(t, gdb, "Alice", "alice@example.com")
	project := createProject(t, gdb, alice.ID, "Launch")

	createTask(t, gdb, project.ID, "only once", types.TaskStatusDone)

	stats, err := GetDashboardStats(gdb, alice.ID)

	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.CompletedTasks != 1 {
		t.Fatalf("expected 1 completed task, got %d", stats.CompletedTasks)
	}
}
