package handlers

import (
	"testing"

	"edusync_backend/policy"

	"github.com/google/uuid"
)

func TestCanMutateResult(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	cases := []struct {
		name    string
		p       policy.Principal
		ownerID uuid.UUID
		allowed bool
	}{
		{"student own result", policy.Principal{ID: owner, Role: policy.RoleStudent}, owner, true},
		{"student foreign result", policy.Principal{ID: other, Role: policy.RoleStudent}, owner, false},
		{"admin any result", policy.Principal{ID: other, Role: policy.RoleAdmin}, owner, true},
		{"instructor own result", policy.Principal{ID: owner, Role: policy.RoleInstructor}, owner, false},
		{"instructor foreign result", policy.Principal{ID: other, Role: policy.RoleInstructor}, owner, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := canMutateResult(c.p, c.ownerID)
			if d.Allowed != c.allowed {
				t.Fatalf("canMutateResult() allowed = %v, want %v (reason %q)", d.Allowed, c.allowed, d.Reason)
			}
		})
	}
}
