package policy

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"Student", RoleStudent, true},
		{"Instructor", RoleInstructor, true},
		{"Admin", RoleAdmin, true},
		{"student", "", false},
		{"ADMIN", "", false},
		{"Trainer", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseRole(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	cases := []struct {
		name    string
		p       Principal
		ownerID uuid.UUID
		allowed bool
	}{
		{"admin any resource", Principal{ID: other, Role: RoleAdmin}, owner, true},
		{"admin unowned resource", Principal{ID: other, Role: RoleAdmin}, uuid.Nil, true},
		{"instructor owns resource", Principal{ID: owner, Role: RoleInstructor}, owner, true},
		{"instructor foreign resource", Principal{ID: other, Role: RoleInstructor}, owner, false},
		{"instructor unowned resource", Principal{ID: owner, Role: RoleInstructor}, uuid.Nil, false},
		{"student owns resource", Principal{ID: owner, Role: RoleStudent}, owner, true},
		{"student foreign resource", Principal{ID: other, Role: RoleStudent}, owner, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := Authorize(c.p, c.ownerID)
			if d.Allowed != c.allowed {
				t.Fatalf("Authorize() allowed = %v, want %v (reason %q)", d.Allowed, c.allowed, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Fatal("denied decision must carry a reason")
			}
		})
	}
}
