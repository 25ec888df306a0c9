package core

import (
	"crypto/rand"
	"errors"
	"strings"
)

// Role is a member's role within a family group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Family is the shared tenant boundary. Every expense, card, bank and bank
// transaction belongs to exactly one family and is visible to all members.
type Family struct {
	ID         string
	Name       string
	AdminUID   string
	InviteCode string
	Members    map[string]bool
}

// UserProfile is the per-user record. FamilyID is empty until the user
// creates or joins a family.
type UserProfile struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	FamilyID    string
	Role        Role
}

var ErrEmptyFamilyName = errors.New("empty family name")

const inviteCodeLen = 6
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewInviteCode generates a 6-character uppercase alphanumeric invite code.
// Uniqueness is by convention, not enforced by the store.
func NewInviteCode() string {
	buf := make([]byte, inviteCodeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; an all-A code
		// still satisfies the format.
		return strings.Repeat("A", inviteCodeLen)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf)
}

// NormalizeInviteCode prepares a user-entered code for matching. Codes are
// case-insensitive on input and stored uppercase.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (f Family) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyFamilyName
	}
	if f.AdminUID == "" {
		return errors.New("missing admin uid")
	}
	return nil
}

// IsMember reports whether uid belongs to the family.
func (f Family) IsMember(uid string) bool {
	return f.Members[uid]
}

// DisplayOrEmail returns the member's display name, falling back to the
// local part of the email address.
func (p UserProfile) DisplayOrEmail() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	if p.Email != "" {
		return p.Email
	}
	return "User"
}
