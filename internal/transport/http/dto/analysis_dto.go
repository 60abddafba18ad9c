package dto

type AnalysisRequest struct {
	Text string `json:"text"`
}

type AnalysisResponse struct {
	PersonalityTraits string `json:"personality_traits"`
	MentalState       string `json:"mental_state"`
	Suggestions       string `json:"suggestions"`
	Summary           string `json:"summary"`
}
