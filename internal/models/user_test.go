package models

import "testing"

func TestIsOwnerOrAdmin(t *testing.T) {
	testCases := []struct {
		name    string
		user    AuthUser
		ownerID string
		want    bool
	}{
		{"owner", AuthUser{ID: "u1", Role: RoleUser}, "u1", true},
		{"admin on someone else's resource", AuthUser{ID: "u2", Role: RoleAdmin}, "u1", true},
		{"admin on own resource", AuthUser{ID: "u1", Role: RoleAdmin}, "u1", true},
		{"stranger", AuthUser{ID: "u2", Role: RoleUser}, "u1", false},
		{"empty ids do not match", AuthUser{ID: "", Role: RoleUser}, "u1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.IsOwnerOrAdmin(tc.ownerID); got != tc.want {
				t.Errorf("IsOwnerOrAdmin(%q) = %v, want %v", tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	if (AuthUser{ID: "u1", Role: RoleUser}).IsAdmin() {
		t.Errorf("regular user reported as admin")
	}
	if !(AuthUser{ID: "u1", Role: RoleAdmin}).IsAdmin() {
		t.Errorf("admin not recognized")
	}
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Errorf("regular user document reported as admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Errorf("admin user document not recognized")
	}
}
