package entities

import "time"

// BadgeInstance is a badge awarded to a user. It is never revoked.
type BadgeInstance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// BadgeSummary is the badge list shown on a profile
type BadgeSummary struct {
	Badges      []BadgeInstance `json:"badges"`
	TotalBadges int             `json:"totalBadges"`
}

// BadgeDescriptor is the public view of a catalog entry
type BadgeDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// BadgeReevaluation reports what a full re-run granted
type BadgeReevaluation struct {
	EventID      string                     `json:"eventId"`
	Participants int                        `json:"participants"`
	Granted      map[string][]BadgeInstance `json:"granted"`
}
