package cli

import (
	"fmt"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
)

func formatClub(c models.Club) string {
	cat := c.Category
	if cat == "" {
		cat = "General"
	}
	return fmt.Sprintf("[%s] %s (%s)", c.ID, c.Name, cat)
}

func formatActivity(a models.Activity) string {
	return fmt.Sprintf("[%s] %s, %s @ %s", a.ID, a.Title, a.Date, a.Location)
}

func formatUser(u models.User) string {
	return fmt.Sprintf("[%s] %s <%s> %s", u.ID, u.Name, u.Email, u.Role)
}

func formatRegistration(r models.Registration) string {
	who := r.StudentRef().String()
	if r.Student != nil && r.Student.Name != "" {
		who = fmt.Sprintf("%s (%s)", r.Student.Name, r.StudentRef())
	}
	s := fmt.Sprintf("%s: %s", who, r.Status)
	if r.JoinedAt != "" {
		s += ", since " + r.JoinedAt
	}
	return s
}

func formatEntry(e services.Entry) string {
	return fmt.Sprintf("[%s] %s from %s: %s", e.ID, e.Type, e.SenderName, e.Message)
}
