package model

// Radar chart category names, fixed by the result card layout.
const (
	RadarLooks         = "颜值"
	RadarWealth        = "财富"
	RadarEmotional     = "情绪价值"
	RadarCompatibility = "契合度"
	RadarComplement    = "性格互补"
)

// RadarCategories returns the five category names in display order.
func RadarCategories() []string {
	return []string{RadarLooks, RadarWealth, RadarEmotional, RadarCompatibility, RadarComplement}
}

// MatchResult is the complete soulmate prediction shown on the result card.
// Every field is guaranteed present; ImageURL stays nil unless portrait
// generation succeeded.
type MatchResult struct {
	Title            string
	Description      string
	Tip              string
	ImageDescription string
	ImageURL         *string
	Radar            map[string]int
}
