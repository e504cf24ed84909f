package domain

import (
	"errors"
	"testing"
)

func TestParseContentState(t *testing.T) {
	tests := []struct {
		input    string
		expected ContentState
	}{
		{"AVAILABLE", ContentAvailable},
		{"syncing", ContentSyncing},
		{"DESELECTED", ContentDeselected},
		{"INSUFFICIENT_STORAGE", ContentInsufficientStorage},
		{"", ContentUnknown},
		{"bogus", ContentUnknown},
	}

	for _, tt := range tests {
		if got := ParseContentState(tt.input); got != tt.expected {
			t.Errorf("ParseContentState(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParsePermissions(t *testing.T) {
	perms, err := ParsePermissions([]string{"WRITE", "manage"})
	if err != nil {
		t.Fatalf("ParsePermissions() error = %v", err)
	}
	if !perms.Has(PermissionWrite) || !perms.Has(PermissionManage) {
		t.Errorf("expected WRITE and MANAGE, got %v", perms)
	}

	_, err = ParsePermissions([]string{"READ"})
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("expected ErrProtocol for unknown permission, got %v", err)
	}
}

func TestRoleFor(t *testing.T) {
	tests := []struct {
		name     string
		perms    Permissions
		expected Role
	}{
		{"none", nil, RoleViewer},
		{"write", Permissions{PermissionWrite}, RoleEditor},
		{"manage", Permissions{PermissionManage}, RoleManager},
		{"both", Permissions{PermissionManage, PermissionWrite}, RoleOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleFor(tt.perms); got != tt.expected {
				t.Errorf("RoleFor(%v) = %s, want %s", tt.perms, got, tt.expected)
			}
		})
	}
}
