package models

// Activity is a campus event. Same replace-on-write discipline as Club.
type Activity struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Image       string `json:"image"`
}

type ActivityInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	Image       string
}

func (in ActivityInput) Fields() map[string]string {
	f := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"date":        in.Date,
		"location":    in.Location,
	}
	if in.Image != "" {
		f["image"] = in.Image
	}
	return f
}
