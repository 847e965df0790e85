// Package router maps a session to the one view its user may see. It is the
// only place role checks happen.
package router

import (
	"fmt"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/common"
)

type View int

const (
	// ViewLoading is selected while the session is not Ready yet.
	ViewLoading View = iota
	ViewGuest
	ViewAdmin
	ViewClubManager
	ViewStudent
)

// Views lists every top-level view a Ready session can select.
var Views = []View{ViewGuest, ViewAdmin, ViewClubManager, ViewStudent}

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewGuest:
		return "guest"
	case ViewAdmin:
		return "admin"
	case ViewClubManager:
		return "club_manager"
	case ViewStudent:
		return "student"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// ViewForRole is the role to view table.
func ViewForRole(r models.Role) (View, bool) {
	switch r {
	case models.RoleAdmin:
		return ViewAdmin, true
	case models.RoleClubManager:
		return ViewClubManager, true
	case models.RoleStudent:
		return ViewStudent, true
	}
	return ViewGuest, false
}

// Select picks the view for snap. An identity with an unknown role falls back
// to the guest view.
func Select(snap session.Snapshot) View {
	if snap.State != session.StateReady {
		return ViewLoading
	}
	if snap.Identity == nil {
		return ViewGuest
	}
	v, _ := ViewForRole(snap.Identity.Role)
	return v
}

// Authorize fails with common.ErrForbidden unless want is the view Select
// picks for snap.
func Authorize(snap session.Snapshot, want View) error {
	if got := Select(snap); got != want {
		return fmt.Errorf("%w: %s view requested, session allows %s", common.ErrForbidden, want, got)
	}
	return nil
}

// StudentTab is the local selector inside the student view.
type StudentTab int

const (
	TabHome StudentTab = iota
	TabProfile
)

func (t StudentTab) String() string {
	if t == TabProfile {
		return "profile"
	}
	return "home"
}

// Toggle switches between home and profile.
func (t StudentTab) Toggle() StudentTab {
	if t == TabHome {
		return TabProfile
	}
	return TabHome
}

// CanJoin reports whether a join action may be offered for clubID: only when
// no registration for that club exists, whatever its status.
func CanJoin(regs []models.Registration, clubID models.ID) bool {
	_, found := RegistrationFor(regs, clubID)
	return !found
}

// RegistrationFor finds the registration for clubID.
func RegistrationFor(regs []models.Registration, clubID models.ID) (models.Registration, bool) {
	for _, r := range regs {
		if r.ClubID == clubID {
			return r, true
		}
	}
	return models.Registration{}, false
}

// CanDecide reports whether a manager may accept or reject reg.
func CanDecide(reg models.Registration) bool {
	return reg.Status == models.StatusPending
}
