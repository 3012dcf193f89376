package domain

import "testing"

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID uint
		wantErr bool
	}{
		{
			name:    "admin passes against any owner",
			actor:   Actor{ID: 1, Role: RoleAdmin},
			ownerID: 42,
			wantErr: false,
		},
		{
			name:    "owner passes against itself",
			actor:   Actor{ID: 7, Role: RoleAdopter},
			ownerID: 7,
			wantErr: false,
		},
		{
			name:    "shelter owner passes against itself",
			actor:   Actor{ID: 3, Role: RoleShelter},
			ownerID: 3,
			wantErr: false,
		},
		{
			name:    "non-admin fails against another owner",
			actor:   Actor{ID: 7, Role: RoleAdopter},
			ownerID: 8,
			wantErr: true,
		},
		{
			name:    "shelter fails against another shelter's resource",
			actor:   Actor{ID: 3, Role: RoleShelter},
			ownerID: 4,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPermission(tt.actor, tt.ownerID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPermission() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !IsForbidden(err) {
				t.Errorf("CheckPermission() error = %v, want forbidden", err)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleShelter, RoleAdopter} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false; want true", role)
		}
	}
	for _, role := range []string{"", "superuser", "Admin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true; want false", role)
		}
	}
}
