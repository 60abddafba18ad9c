package dto

type PredictionRequest struct {
	Gender    string   `json:"gender"`
	Birthdate string   `json:"birthdate"`
	Introvert int      `json:"introvert"`
	Emotional int      `json:"emotional"`
	Keywords  []string `json:"keywords"`
}

type PredictionResponse struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Tip              string         `json:"tip"`
	ImageDescription string         `json:"image_description"`
	ImageURL         *string        `json:"image_url"`
	Radar            map[string]int `json:"radar"`
	Zodiac           string         `json:"zodiac"`
}
