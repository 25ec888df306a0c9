package core

import (
	"strings"
	"testing"
)

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code := NewInviteCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("20 generated codes were all identical")
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	cases := []struct{ in, out string }{
		{"ab12cd", "AB12CD"},
		{"  AB12CD  ", "AB12CD"},
		{"Ab12Cd", "AB12CD"},
	}
	for _, tc := range cases {
		if got := NormalizeInviteCode(tc.in); got != tc.out {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestFamilyValidate(t *testing.T) {
	good := Family{Name: "Sharma", AdminUID: "u1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Family{Name: " ", AdminUID: "u1"}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := (Family{Name: "Sharma"}).Validate(); err == nil {
		t.Fatalf("expected error for missing admin")
	}
}

func TestFamilyIsMember(t *testing.T) {
	fam := Family{Members: map[string]bool{"u1": true}}
	if !fam.IsMember("u1") {
		t.Fatalf("expected u1 to be a member")
	}
	if fam.IsMember("u2") {
		t.Fatalf("expected u2 not to be a member")
	}
	if (Family{}).IsMember("u1") {
		t.Fatalf("nil member map should report no members")
	}
}

func TestDisplayOrEmail(t *testing.T) {
	cases := []struct {
		p   UserProfile
		out string
	}{
		{UserProfile{DisplayName: "Asha", Email: "asha@example.com"}, "Asha"},
		{UserProfile{Email: "asha@example.com"}, "asha"},
		{UserProfile{Email: "nodomain"}, "nodomain"},
		{UserProfile{}, "User"},
	}
	for i, tc := range cases {
		if got := tc.p.DisplayOrEmail(); got != tc.out {
			t.Fatalf("case %d: expected %q, got %q", i, tc.out, got)
		}
	}
}
