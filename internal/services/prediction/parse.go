package prediction

import (
	"encoding/json"
	"strings"
)

type matchPayload struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Tip              string             `json:"tip"`
	ImageDescription string             `json:"imageDescription"`
	Radar            map[string]float64 `json:"radar"`
}

// parseMatchPayload pulls the JSON object out of a free-text model reply.
// Models tend to wrap the payload in prose, so the candidate is the greedy
// slice from the first '{' to the last '}'.
func parseMatchPayload(reply string) (matchPayload, bool) {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return matchPayload{}, false
	}

	var payload matchPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return matchPayload{}, false
	}
	return payload, true
}

func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
