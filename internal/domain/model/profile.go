package model

import "time"

const (
	GenderMale   = "男"
	GenderFemale = "女"
)

// Personality holds the two slider axes from the input form, both 0-100.
// Below 50 reads as the left pole (内向 / 感性), at or above 50 as the right
// pole (外向 / 理性).
type Personality struct {
	Introvert int
	Emotional int
}

// Profile is a match-prediction submission. Zodiac is always derived from
// Birthdate, never taken from the client as-is.
type Profile struct {
	Gender      string
	Birthdate   time.Time
	Zodiac      string
	Personality Personality
	Keywords    []string
}
