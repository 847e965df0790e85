package models

// Badge is an award held by a student. Badges are append-only.
type Badge struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	ClubID   ID     `json:"clubId"`
	ClubName string `json:"clubName"`
}

// BadgeAward is the POST /badges/add payload.
type BadgeAward struct {
	StudentID ID         `json:"studentId"`
	Data      BadgeBrief `json:"data"`
}

// BadgeBrief uses the field casing the badge endpoint expects.
type BadgeBrief struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	ClubID   ID     `json:"ClubId"`
	ClubName string `json:"ClubName"`
}

// BadgeCatalog lists the badges a manager can award.
var BadgeCatalog = []Badge{
	{Name: "Most Active Member", Icon: "🔥"},
	{Name: "Top Contributor", Icon: "🌟"},
	{Name: "Rising Star", Icon: "✨"},
	{Name: "Leadership Award", Icon: "👑"},
	{Name: "Elite Member", Icon: "💎"},
	{Name: "Event Pro", Icon: "🎫"},
}
