package services

import (
	"errors"
	"testing"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func TestInviteMemberCreatesPendingInvitationAndNotification(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	result, err := InviteMember(gdb, &project, "bob@example.com")

	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if result.Invitation.Status != types.InvitationPending {
		t.Fatalf("expected pending status, got %q", result.Invitation.Status)
	}

	if result.Invitee.ID != bob.ID {
		t.Fatalf("expected invitee %d, got %d", bob.ID, result.Invitee.ID)
	}

	notifications, err := ListUnreadNotifications(gdb, bob.ID)

	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}

	if len(notifications) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifications))
	}

	if notifications[0].Link == "" {
		t.Fatal("notification should carry a project link")
	}
}

func TestInviteMemberNormalizesEmail(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	result, err := InviteMember(gdb, &project, "  Bob@Example.com ")

	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if result.Invitation.Email != "bob@example.com" {
		t.Fatalf("expected normalized email, got %q", result.Invitation.Email)
	}
}

func TestInviteUnknownEmail(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	_, err := InviteMember(gdb, &project, "stranger@example.com")

	if !errors.Is(err, types.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInviteExistingMember(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	if err := AttachMember(gdb, project.ID, bob.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	_, err := InviteMember(gdb, &project, "bob@example.com")

	if !errors.Is(err, types.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestInviteOwner(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	_, err := InviteMember(gdb, &project, "alice@example.com")

	if !errors.Is(err, types.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember for the owner, got %v", err)
	}
}

func TestReinviteReusesRow(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	first, err := InviteMember(gdb, &project, "bob@example.com")

	if err != nil {
		t.Fatalf("first invite: %v", err)
	}

	if err := DeclineInvitation(gdb, &first.Invitation); err != nil {
		t.Fatalf("decline: %v", err)
	}

	second, err := InviteMember(gdb, &project, "bob@example.com")

	if err != nil {
		t.Fatalf("second invite: %v", err)
	}

	if second.Invitation.ID != first.Invitation.ID {
		t.Fatalf("re-invite created a new row: %d != %d", second.Invitation.ID, first.Invitation.ID)
	}

	if second.Invitation.Status != types.InvitationPending {
		t.Fatalf("re-invite should reset status to pending, got %q", second.Invitation.Status)
	}

	var count int64

	if err := gdb.Model(&models.ProjectInvitation{}).
		Where("project_id = ? AND email = ?", project.ID, "bob@example.com").
		Count(&count).Error; err != nil {
		t.Fatalf("count invitations: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected a single invitation row, got %d", count)
	}
}

func TestAcceptInvitationIsIdempotent(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	result, err := InviteMember(gdb, &project, "bob@example.com")

	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := AcceptInvitation(gdb, &result.Invitation, bob.ID); err != nil {
			t.Fatalf("accept %d: %v", i, err)
		}

		invitation, err := GetInvitation(gdb, result.Invitation.ID)

		if err != nil {
			t.Fatalf("reload invitation: %v", err)
		}

		if invitation.Status != types.InvitationAccepted {
			t.Fatalf("accept %d: expected accepted status, got %q", i, invitation.Status)
		}

		if count := membershipCount(t, gdb, project.ID, bob.ID); count != 1 {
			t.Fatalf("accept %d: expected 1 membership row, got %d", i, count)
		}
	}
}

func TestDeclineInvitationLeavesMembership(t *testing.T) {
	gdb := testDB(t)

	owner := createUser(t, gdb, "Alice", "alice@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")
	project := createProject(t, gdb, owner.ID, "Launch")

	result, err := InviteMember(gdb, &project, "bob@example.com")

	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if err := DeclineInvitation(gdb, &result.Invitation); err != nil {
		t.Fatalf("decline: %v", err)
	}

	invitation, err := GetInvitation(gdb, result.Invitation.ID)

	if err != nil {
		t.Fatalf("reload invitation: %v", err)
	}

	if invitation.Status != types.InvitationDeclined {
		t.Fatalf("expected declined status, got %q", invitation.Status)
	}

	if count := membershipCount(t, gdb, project.ID, bob.ID); count != 0 {
		t.Fatalf("decline must not attach membership, got %d rows", count)
	}
}

func TestListInvitationsPendingNewestFirst(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	carol := createUser(t, gdb, "Carol", "carol@example.com")
	bob := createUser(t, gdb, "Bob", "bob@example.com")

	first := createProject(t, gdb, alice.ID, "Launch")
	second := createProject(t, gdb, carol.ID, "Docs")

	res1, err := InviteMember(gdb, &first, "bob@example.com")

	if err != nil {
		t.Fatalf("invite to first: %v", err)
	}

	if _, err := InviteMember(gdb, &second, "bob@example.com"); err != nil {
		t.Fatalf("invite to second: %v", err)
	}

	if err := AcceptInvitation(gdb, &res1.Invitation, bob.ID); err != nil {
		t.Fatalf("accept first: %v", err)
	}

	invitations, err := ListInvitations(gdb, "bob@example.com")

	if err != nil {
		t.Fatalf("list invitations: %v", err)
	}

	if len(invitations) != 1 {
		t.Fatalf("expected only the pending invitation, got %d", len(invitations))
	}

	if invitations[0].ProjectID != second.ID {
		t.Fatalf("expected invitation for project %d, got %d", second.ID, invitations[0].ProjectID)
	}

	if invitations[0].Project.ID == 0 {
		t.Fatal("expected project preloaded on invitation")
	}
}

func TestInvitationRowsSurviveWithSingleUpsertKey(t *testing.T) {
	gdb := testDB(t)

	alice := createUser(t, gdb, "Alice", "alice@example.com")
	createUser(t, gdb, "Bob", "bob@example.com")
	createUser(t, gdb, "Carol", "carol@example.com")
	project := createProject(t, gdb, alice.ID, "Launch")

	if _, err := InviteMember(gdb, &project, "bob@example.com"); err != nil {
		t.Fatalf("invite bob: %v", err)
	}

	if _, err := InviteMember(gdb, &project, "carol@example.com"); err != nil {
		t.Fatalf("invite carol: %v", err)
	}

	var count int64

	if err := gdb.Model(&models.ProjectInvitation{}).
		Where("project_id = ?", project.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count invitations: %v", err)
	}

	if count != 2 {
		t.Fatalf("distinct emails must get distinct rows, got %d", count)
	}
}
