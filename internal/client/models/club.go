package models

// Club is a student club. Mutations produce a replacement record; the client
// never patches a Club in place.
type Club struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	ManagerID   ID     `json:"managerId"`
}

// ClubInput is the payload for creating or updating a club. Image holds an
// asset reference obtained from the asset host, never raw bytes.
type ClubInput struct {
	Name        string
	Description string
	Category    string
	Image       string
	ManagerID   ID
}

// Fields renders the input as multipart form fields.
func (in ClubInput) Fields() map[string]string {
	f := map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"category":    in.Category,
	}
	if f["category"] == "" {
		f["category"] = "General"
	}
	if in.Image != "" {
		f["image"] = in.Image
	}
	if in.ManagerID != "" {
		f["managerId"] = in.ManagerID.String()
	}
	return f
}

// ManagedClubRef is the lookup result for the club a manager runs.
type ManagedClubRef struct {
	ID ID `json:"id"`
}
