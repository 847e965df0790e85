package models

// Status is the lifecycle state of a registration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) Valid() bool {
	return s == StatusPending || s.Terminal()
}

// CanTransition reports whether the backend accepts moving from s to next.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// Registration is a student's request to join a club.
type Registration struct {
	ID        ID     `json:"id"`
	StudentID ID     `json:"studentId"`
	ClubID    ID     `json:"clubId"`
	Status    Status `json:"status"`
	JoinedAt  string `json:"joinedAt"`

	// Student is filled in by club listings.
	Student *User `json:"student,omitempty"`

	// Provisional marks a locally appended record that has not yet been
	// confirmed by a full refresh.
	Provisional bool `json:"-"`
}

// StudentRef returns the student id, preferring the embedded student.
func (r Registration) StudentRef() ID {
	if r.Student != nil && r.Student.ID != "" {
		return r.Student.ID
	}
	return r.StudentID
}
