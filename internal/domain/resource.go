package domain

import (
	"fmt"
	"strings"
)

// ContentState reports the local sync status of a file's content on the
// device that answered the request
type ContentState string

const (
	ContentAvailable           ContentState = "AVAILABLE"
	ContentSyncing             ContentState = "SYNCING"
	ContentDeselected          ContentState = "DESELECTED"
	ContentInsufficientStorage ContentState = "INSUFFICIENT_STORAGE"

	// ContentUnknown is used when the response carries no content state
	ContentUnknown ContentState = "UNKNOWN"
)

// ParseContentState maps a wire value to a ContentState, falling back to
// ContentUnknown for empty or unrecognized values
func ParseContentState(s string) ContentState {
	switch cs := ContentState(strings.ToUpper(s)); cs {
	case ContentAvailable, ContentSyncing, ContentDeselected, ContentInsufficientStorage:
		return cs
	}
	return ContentUnknown
}

// Permission is a single shared-folder permission
type Permission string

const (
	PermissionWrite  Permission = "WRITE"
	PermissionManage Permission = "MANAGE"
)

// IsValid checks if the permission is a known value
func (p Permission) IsValid() bool {
	switch p {
	case PermissionWrite, PermissionManage:
		return true
	}
	return false
}

// Permissions is the set of permissions held by a shared-folder member
type Permissions []Permission

// ParsePermissions validates raw wire values
func ParsePermissions(raw []string) (Permissions, error) {
	perms := make(Permissions, 0, len(raw))
	for _, r := range raw {
		p := Permission(strings.ToUpper(r))
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: unknown permission %q", ErrProtocol, r)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

// Has reports whether p is part of the set
func (ps Permissions) Has(p Permission) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// Strings returns the wire representation
func (ps Permissions) Strings() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

// Role is the coarse role name derived from a permission set
type Role string

const (
	RoleViewer  Role = "VIEWER"
	RoleEditor  Role = "EDITOR"
	RoleManager Role = "MANAGER"
	RoleOwner   Role = "OWNER"
)

// RoleFor derives the role name: WRITE and MANAGE are independent bits,
// both together make an owner
func RoleFor(ps Permissions) Role {
	write, manage := ps.Has(PermissionWrite), ps.Has(PermissionManage)
	switch {
	case write && manage:
		return RoleOwner
	case manage:
		return RoleManager
	case write:
		return RoleEditor
	default:
		return RoleViewer
	}
}
