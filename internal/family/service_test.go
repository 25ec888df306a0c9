package family

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gharkharch/internal/core"
	"gharkharch/internal/store/memory"
)

func TestRegisterProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	prof, err := svc.RegisterProfile(ctx, "u1", "asha@example.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if prof.DisplayName != "asha" {
		t.Fatalf("expected display name from email local part, got %q", prof.DisplayName)
	}
	if prof.Role != core.RoleMember || prof.FamilyID != "" {
		t.Fatalf("fresh profile must be a member of no family: %+v", prof)
	}
}

func TestCreateAndJoinFamily(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewService(s)

	if _, err := svc.RegisterProfile(ctx, "admin", "admin@example.com", "Asha"); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if _, err := svc.RegisterProfile(ctx, "member", "ravi@example.com", "Ravi"); err != nil {
		t.Fatalf("register member: %v", err)
	}

	fam, err := svc.CreateFamily(ctx, "admin", "Sharma")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if len(fam.InviteCode) != 6 {
		t.Fatalf("expected 6-character invite code, got %q", fam.InviteCode)
	}
	adminProf, _ := s.Profiles().Get(ctx, "admin")
	if adminProf.FamilyID != fam.ID || adminProf.Role != core.RoleAdmin {
		t.Fatalf("admin profile not updated: %+v", adminProf)
	}

	// Joining is case-insensitive on the code.
	joined, err := svc.JoinFamily(ctx, "member", "  "+strings.ToLower(fam.InviteCode)+"  ")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.ID != fam.ID || !joined.IsMember("member") {
		t.Fatalf("member not added: %+v", joined)
	}
	memberProf, _ := s.Profiles().Get(ctx, "member")
	if memberProf.FamilyID != fam.ID || memberProf.Role != core.RoleMember {
		t.Fatalf("member profile not updated: %+v", memberProf)
	}
}

func TestJoinFamilyInvalidCode(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())
	if _, err := svc.RegisterProfile(ctx, "u1", "u1@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.JoinFamily(ctx, "u1", "ZZZZZZ"); !errors.Is(err, ErrInvalidInviteCode) {
		t.Fatalf("expected ErrInvalidInviteCode, got %v", err)
	}
}

func TestSingleFamilyMembership(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())
	if _, err := svc.RegisterProfile(ctx, "u1", "u1@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	fam, err := svc.CreateFamily(ctx, "u1", "First")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.CreateFamily(ctx, "u1", "Second"); !errors.Is(err, ErrAlreadyInFamily) {
		t.Fatalf("expected ErrAlreadyInFamily, got %v", err)
	}
	if _, err := svc.JoinFamily(ctx, "u1", fam.InviteCode); !errors.Is(err, ErrAlreadyInFamily) {
		t.Fatalf("expected ErrAlreadyInFamily, got %v", err)
	}
}

func TestLeaveFamily(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewService(s)

	if _, err := svc.RegisterProfile(ctx, "admin", "admin@example.com", ""); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if _, err := svc.RegisterProfile(ctx, "member", "ravi@example.com", ""); err != nil {
		t.Fatalf("register member: %v", err)
	}
	fam, err := svc.CreateFamily(ctx, "admin", "Sharma")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.JoinFamily(ctx, "member", fam.InviteCode); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.LeaveFamily(ctx, "admin"); !errors.Is(err, ErrAdminCannotLeave) {
		t.Fatalf("expected ErrAdminCannotLeave, got %v", err)
	}

	if err := svc.LeaveFamily(ctx, "member"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	got, _ := s.Families().Get(ctx, fam.ID)
	if got.IsMember("member") {
		t.Fatalf("member still listed after leaving: %+v", got)
	}
	prof, _ := s.Profiles().Get(ctx, "member")
	if prof.FamilyID != "" {
		t.Fatalf("profile still assigned to a family: %+v", prof)
	}

	if err := svc.LeaveFamily(ctx, "member"); !errors.Is(err, ErrNotInFamily) {
		t.Fatalf("expected ErrNotInFamily, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewService(s)
	if _, err := svc.RegisterProfile(ctx, "u1", "u1@example.com", "Old"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.UpdateProfile(ctx, "u1", "New Name", "https://example.com/p.jpg"); err != nil {
		t.Fatalf("update: %v", err)
	}
	prof, _ := s.Profiles().Get(ctx, "u1")
	if prof.DisplayName != "New Name" || prof.PhotoURL != "https://example.com/p.jpg" {
		t.Fatalf("profile not updated: %+v", prof)
	}
	if err := svc.UpdateProfile(ctx, "ghost", "X", ""); err == nil {
		t.Fatalf("expected error for missing profile")
	}
}

func TestMemberNames(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := NewService(s)

	if _, err := svc.RegisterProfile(ctx, "u1", "asha@example.com", "Asha"); err != nil {
		t.Fatalf("register: %v", err)
	}
	fam := core.Family{Members: map[string]bool{"u1": true, "ghost": true}}

	names := svc.MemberNames(ctx, fam)
	if names["u1"] != "Asha" {
		t.Fatalf("expected Asha, got %q", names["u1"])
	}
	if names["ghost"] != "User" {
		t.Fatalf("missing profile must fall back to placeholder, got %q", names["ghost"])
	}
}
