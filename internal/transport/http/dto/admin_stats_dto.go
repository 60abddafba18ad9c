package dto

type AdminStatsResponse struct {
	Date   string           `json:"date"`
	Counts map[string]int64 `json:"counts"`
}
