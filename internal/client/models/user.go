package models

import (
	"encoding/json"
	"fmt"
)

// Role is the authorization role carried by an identity.
type Role string

const (
	RoleStudent     Role = "student"
	RoleClubManager Role = "club_manager"
	RoleAdmin       Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleStudent, RoleClubManager, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleClubManager, RoleAdmin:
		return true
	}
	return false
}

// User is a platform account as returned by listings.
type User struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Identity is the authenticated user's profile. Fields the client does not
// model are kept in extra and written back unchanged.
type Identity struct {
	User
	extra map[string]json.RawMessage
}

var knownIdentityFields = map[string]struct{}{
	"id": {}, "name": {}, "email": {}, "role": {}, "bio": {}, "avatar": {},
}

func (i *Identity) UnmarshalJSON(b []byte) error {
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for k := range knownIdentityFields {
		delete(raw, k)
	}
	i.User = u
	i.extra = nil
	if len(raw) > 0 {
		i.extra = raw
	}
	return nil
}

func (i Identity) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(i.User)
	if err != nil {
		return nil, err
	}
	if len(i.extra) == 0 {
		return known, nil
	}
	out := make(map[string]json.RawMessage, len(i.extra)+len(knownIdentityFields))
	for k, v := range i.extra {
		out[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// Extra returns the raw value of a field the client does not model.
func (i Identity) Extra(key string) (json.RawMessage, bool) {
	v, ok := i.extra[key]
	return v, ok
}

// Validate reports whether the identity is usable as a session identity.
func (i Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity has no id")
	}
	if !i.Role.Valid() {
		return fmt.Errorf("identity %s has unknown role %q", i.ID, i.Role)
	}
	return nil
}

// IdentityPatch holds the fields of a local profile merge. Nil fields are
// left untouched.
type IdentityPatch struct {
	Name   *string
	Email  *string
	Bio    *string
	Avatar *string
}

// Merge returns a copy of i with the non-nil fields of p applied. Id, role
// and unknown fields are never changed by a merge.
func (i Identity) Merge(p IdentityPatch) Identity {
	out := i
	if len(i.extra) > 0 {
		out.extra = make(map[string]json.RawMessage, len(i.extra))
		for k, v := range i.extra {
			out.extra[k] = v
		}
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Bio != nil {
		out.Bio = *p.Bio
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	return out
}

// ProfileInput is the payload of a profile update.
type ProfileInput struct {
	Name string `json:"name,omitempty"`
	Bio  string `json:"bio"`
}
