// Package family manages family-group membership: creation with invite
// codes, joining by code, and profile upkeep.
package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gharkharch/internal/core"
	"gharkharch/internal/store"
)

var (
	// ErrInvalidInviteCode means no family carries the entered code.
	ErrInvalidInviteCode = errors.New("invalid invite code")
	// ErrAlreadyInFamily guards against a user creating or joining a second
	// family while still a member of one.
	ErrAlreadyInFamily = errors.New("user already belongs to a family")
	// ErrNotInFamily is returned when an operation needs a family membership
	// the user does not have.
	ErrNotInFamily = errors.New("user does not belong to a family")
	// ErrAdminCannotLeave keeps the family from losing its admin; the group
	// would be unmanageable with the invite code's owner gone.
	ErrAdminCannotLeave = errors.New("family admin cannot leave")
)

// Service orchestrates family lifecycle over the record store.
type Service struct {
	store store.RecordStore
}

func NewService(rs store.RecordStore) *Service {
	return &Service{store: rs}
}

// RegisterProfile creates the initial profile for a newly authenticated
// user: no family, member role, display name defaulting to the email local
// part. Existing profiles are overwritten field-for-field, matching the
// store's last-write-wins semantics.
func (s *Service) RegisterProfile(ctx context.Context, uid, email, displayName string) (core.UserProfile, error) {
	prof := core.UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		Role:        core.RoleMember,
	}
	if prof.DisplayName == "" {
		prof.DisplayName = prof.DisplayOrEmail()
	}
	if err := s.store.Profiles().Upsert(ctx, prof); err != nil {
		return core.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	return prof, nil
}

// CreateFamily creates a family group with a fresh invite code and makes uid
// its admin.
func (s *Service) CreateFamily(ctx context.Context, uid, name string) (core.Family, error) {
	if err := s.ensureNoFamily(ctx, uid); err != nil {
		return core.Family{}, err
	}

	fam := core.Family{
		Name:       name,
		AdminUID:   uid,
		InviteCode: core.NewInviteCode(),
		Members:    map[string]bool{uid: true},
	}
	id, err := s.store.Families().Create(ctx, fam)
	if err != nil {
		return core.Family{}, fmt.Errorf("create family: %w", err)
	}
	fam.ID = id

	if err := s.store.Profiles().SetFamily(ctx, uid, id, core.RoleAdmin); err != nil {
		return core.Family{}, fmt.Errorf("assign admin: %w", err)
	}

	slog.InfoContext(ctx, "Family created",
		"family_id", id,
		"admin_uid", uid,
		"invite_code", fam.InviteCode)
	return fam, nil
}

// JoinFamily adds uid to the family carrying the invite code. Matching is
// case-insensitive and ignores surrounding whitespace.
func (s *Service) JoinFamily(ctx context.Context, uid, code string) (core.Family, error) {
	if err := s.ensureNoFamily(ctx, uid); err != nil {
		return core.Family{}, err
	}

	fam, err := s.store.Families().FindByInviteCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return core.Family{}, ErrInvalidInviteCode
	}
	if err != nil {
		return core.Family{}, fmt.Errorf("find family: %w", err)
	}

	if err := s.store.Families().AddMember(ctx, fam.ID, uid); err != nil {
		return core.Family{}, fmt.Errorf("add member: %w", err)
	}
	if err := s.store.Profiles().SetFamily(ctx, uid, fam.ID, core.RoleMember); err != nil {
		return core.Family{}, fmt.Errorf("assign member: %w", err)
	}

	if fam.Members == nil {
		fam.Members = make(map[string]bool)
	}
	fam.Members[uid] = true

	slog.InfoContext(ctx, "Member joined family",
		"family_id", fam.ID,
		"uid", uid)
	return fam, nil
}

// LeaveFamily removes uid from their current family and clears the profile's
// family assignment. The admin cannot leave; the family's records stay
// untouched either way.
func (s *Service) LeaveFamily(ctx context.Context, uid string) error {
	prof, err := s.store.Profiles().Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if prof.FamilyID == "" {
		return ErrNotInFamily
	}

	fam, err := s.store.Families().Get(ctx, prof.FamilyID)
	if err != nil {
		return fmt.Errorf("load family: %w", err)
	}
	if fam.AdminUID == uid {
		return ErrAdminCannotLeave
	}

	if err := s.store.Families().RemoveMember(ctx, fam.ID, uid); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if err := s.store.Profiles().SetFamily(ctx, uid, "", core.RoleMember); err != nil {
		return fmt.Errorf("clear family assignment: %w", err)
	}

	slog.InfoContext(ctx, "Member left family",
		"family_id", fam.ID,
		"uid", uid)
	return nil
}

// UpdateProfile changes the user's display name and photo reference.
func (s *Service) UpdateProfile(ctx context.Context, uid, displayName, photoURL string) error {
	prof, err := s.store.Profiles().Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	prof.DisplayName = displayName
	prof.PhotoURL = photoURL
	if err := s.store.Profiles().Upsert(ctx, prof); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// MemberNames resolves each member uid to a displayable name. Members whose
// profile is missing fall back to a placeholder rather than erroring; a
// profile record can lag behind the membership write.
func (s *Service) MemberNames(ctx context.Context, fam core.Family) map[string]string {
	names := make(map[string]string, len(fam.Members))
	for uid := range fam.Members {
		prof, err := s.store.Profiles().Get(ctx, uid)
		if err != nil {
			names[uid] = "User"
			continue
		}
		names[uid] = prof.DisplayOrEmail()
	}
	return names
}

func (s *Service) ensureNoFamily(ctx context.Context, uid string) error {
	prof, err := s.store.Profiles().Get(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if prof.FamilyID != "" {
		return ErrAlreadyInFamily
	}
	return nil
}
