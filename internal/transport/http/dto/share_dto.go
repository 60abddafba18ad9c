package dto

import (
	"encoding/json"
	"time"
)

type ShareCreateRequest struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type ShareCreateResponse struct {
	ID string `json:"id"`
}

type ShareCardResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
