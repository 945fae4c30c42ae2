package services

import (
	"errors"
	"testing"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

func createNotification(t *testing.T, gdb *gorm.DB, userID uint, message string, createdAt time.Time) models.Notification {
	t.Helper()

	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}
	notification.CreatedAt = createdAt

	if err := gdb.Create(&notification).Error; err != nil {
		t.Fatalf("create notification %s: %v", message, err)
	}

	return notification
}

func TestListUnreadNotificationsNewestFirst(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	createNotification(t, gdb, alice.ID, "older", base)
	createNotification(t, gdb, alice.ID, "newer", base.Add(time.Hour))
	createNotification(t, gdb, bob.ID, "someone else's", base.Add(2*time.Hour))

	read := createNotification(t, gdb, alice.ID, "already read", base.Add(3*time.Hour))

	if err := gdb.Model(&read).Update("is_read", true).Error; err != nil {
		t.Fatalf("mark read: %v", err)
	}

	notifications, err := ListUnreadNotifications(gdb, alice.ID)

	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}

	if len(notifications) != 2 {
		t.Fatalf("expected 2 unread notifications, got %d", len(notifications))
	}

	if notifications[0].Message != "newer" || notifications[1].Message != "older" {
		t.Fatalf("expected newest first, got %q then %q", notifications[0].Message, notifications[1].Message)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := createNotification(t, gdb, alice.ID, "first", base)
	createNotification(t, gdb, alice.ID, "second", base.Add(time.Hour))

	if err := MarkNotificationRead(gdb, &first); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	reloaded, err := GetNotification(gdb, first.ID)

	if err != nil {
		t.Fatalf("reload notification: %v", err)
	}

	if !reloaded.IsRead {
		t.Fatal("notification should be read")
	}

	notifications, err := ListUnreadNotifications(gdb, alice.ID)

	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}

	if len(notifications) != 1 || notifications[0].Message != "second" {
		t.Fatalf("expected only the second notification unread, got %+v", notifications)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	createNotification(t, gdb, alice.ID, "first", base)
	createNotification(t, gdb, alice.ID, "second", base.Add(time.Hour))
	createNotification(t, gdb, bob.ID, "bob's", base)

	if err := MarkAllNotificationsRead(gdb, alice.ID); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	notifications, err := ListUnreadNotifications(gdb, alice.ID)

	if err != nil {
		t.Fatalf("list alice's notifications: %v", err)
	}

	if len(notifications) != 0 {
		t.Fatalf("expected no unread notifications, got %d", len(notifications))
	}

	// Other users' notifications are untouched.
	notifications, err = ListUnreadNotifications(gdb, bob.ID)

	if err != nil {
		t.Fatalf("list bob's notifications: %v", err)
	}

	if len(notifications) != 1 {
		t.Fatalf("expected bob's notification to stay unread, got %d", len(notifications))
	}
}

func TestGetNotificationNotFound(t *testing.T) {
	gdb := testDB(t)

	if _, err := GetNotification(gdb, 9999); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
