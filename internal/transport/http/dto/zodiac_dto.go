package dto

type ZodiacResponse struct {
	Date   string `json:"date"`
	Zodiac string `json:"zodiac"`
}
