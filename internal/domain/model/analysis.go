package model

// PersonalityResult is the four-section self-description analysis. Fields
// are always non-empty; missing model output is substituted per-field.
type PersonalityResult struct {
	PersonalityTraits string
	MentalState       string
	Suggestions       string
	Summary           string
}
