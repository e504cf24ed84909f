package api

import "time"

// Wire types. Keys that the service omits in some contexts are pointers so
// that absence is distinguishable from the zero value.

type User struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Present only when the token carries the matching scopes
	Shares      *[]SharedFolder `json:"shares,omitempty"`
	Invitations *[]Invitation   `json:"invitations,omitempty"`
}

type UserList struct {
	Data    []User `json:"data"`
	HasMore bool   `json:"has_more"`
}

type TwoFactor struct {
	Enforce bool `json:"enforce"`
}

type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Absent in path and children listings
	Parent   *string `json:"parent,omitempty"`
	IsShared bool    `json:"is_shared"`
	// Shared folder id, present when IsShared
	SID *string `json:"sid,omitempty"`
}

type File struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Parent *string `json:"parent,omitempty"`
	// Absent on empty files
	LastModified *time.Time `json:"last_modified,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	MimeType     string     `json:"mime_type"`
	ContentState *string    `json:"content_state,omitempty"`
}

// ParentPath is the list of ancestors of a folder or file, root first
type ParentPath struct {
	Folders []Folder `json:"folders"`
}

type Children struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

type SharedFolder struct {
	ID                         string            `json:"id"`
	Name                       string            `json:"name"`
	IsExternal                 bool              `json:"is_external"`
	Members                    []SFMember        `json:"members"`
	Groups                     []SFGroupMember   `json:"groups"`
	Pending                    []SFPendingMember `json:"pending"`
	CallerEffectivePermissions []string          `json:"caller_effective_permissions"`
}

type SFMember struct {
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Permissions []string `json:"permissions"`
}

type SFGroupMember struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type SFPendingMember struct {
	Email string `json:"email"`
	// Present only when the invitee already has an account
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	InvitedBy   string   `json:"invited_by"`
	Permissions []string `json:"permissions"`
	Note        *string  `json:"note,omitempty"`
}

type Group struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Members []GroupMember `json:"members"`
}

type GroupList struct {
	Data    []Group `json:"data"`
	HasMore bool    `json:"has_more"`
}

type GroupMember struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Device struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	OSFamily    string    `json:"os_family"`
	InstallDate time.Time `json:"install_date"`
}

type DeviceStatus struct {
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

type Invitation struct {
	ShareID     string   `json:"share_id"`
	ShareName   string   `json:"share_name"`
	InvitedBy   string   `json:"invited_by"`
	Permissions []string `json:"permissions"`
}

type Invitee struct {
	EmailTo    string  `json:"email_to"`
	EmailFrom  string  `json:"email_from"`
	SignupCode *string `json:"signup_code,omitempty"`
}

// Page selects a window of a cursor-paginated listing
type Page struct {
	Limit  int
	After  string
	Before string
}

// Offset selects a window of an offset-paginated listing
type Offset struct {
	Offset  int
	Results int
}

// Request bodies

type userBody struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type parentName struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
}

type nameBody struct {
	Name string `json:"name"`
}

type memberBody struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

type permissionsBody struct {
	Permissions []string `json:"permissions"`
}

type groupMemberBody struct {
	ID          string   `json:"id"`
	Permissions []string `json:"permissions"`
}

type pendingBody struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	Note        string   `json:"note,omitempty"`
}

type emailBody struct {
	Email string `json:"email"`
}

type inviteeBody struct {
	EmailTo   string `json:"email_to"`
	EmailFrom string `json:"email_from"`
}
