package rules

import "time"

// Zodiac sign labels as shown to the user. Order follows the calendar year
// starting from Capricorn, matching the range table below.
const (
	SignCapricorn   = "摩羯座"
	SignAquarius    = "水瓶座"
	SignPisces      = "双鱼座"
	SignAries       = "白羊座"
	SignTaurus      = "金牛座"
	SignGemini      = "双子座"
	SignCancer      = "巨蟹座"
	SignLeo         = "狮子座"
	SignVirgo       = "处女座"
	SignLibra       = "天秤座"
	SignScorpio     = "天蝎座"
	SignSagittarius = "射手座"
)

type signRange struct {
	name       string
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

// signRanges covers every sign except Capricorn, which wraps the year
// boundary and is handled separately in SignFromBirthdate.
var signRanges = []signRange{
	{SignAquarius, time.January, 20, time.February, 18},
	{SignPisces, time.February, 19, time.March, 20},
	{SignAries, time.March, 21, time.April, 19},
	{SignTaurus, time.April, 20, time.May, 20},
	{SignGemini, time.May, 21, time.June, 21},
	{SignCancer, time.June, 22, time.July, 22},
	{SignLeo, time.July, 23, time.August, 22},
	{SignVirgo, time.August, 23, time.September, 22},
	{SignLibra, time.September, 23, time.October, 23},
	{SignScorpio, time.October, 24, time.November, 22},
	{SignSagittarius, time.November, 23, time.December, 21},
}

// Signs returns the 12 labels in calendar order starting from Capricorn.
func Signs() []string {
	out := make([]string, 0, 12)
	out = append(out, SignCapricorn)
	for _, r := range signRanges {
		out = append(out, r.name)
	}
	return out
}

// SignFromBirthdate maps a Gregorian month/day to the matching zodiac sign
// label. A zero time means "unclassified" and yields an empty string.
// Boundary days belong to the later sign: Mar 20 is 双鱼座, Mar 21 is 白羊座.
func SignFromBirthdate(d time.Time) string {
	if d.IsZero() {
		return ""
	}

	m := d.UTC().Month()
	day := d.UTC().Day()

	// Capricorn spans Dec 22 - Jan 19 across the year boundary.
	if (m == time.December && day >= 22) || (m == time.January && day <= 19) {
		return SignCapricorn
	}

	for _, r := range signRanges {
		if m > r.startMonth && m < r.endMonth {
			return r.name
		}
		if m == r.startMonth && day >= r.startDay {
			return r.name
		}
		if m == r.endMonth && day <= r.endDay {
			return r.name
		}
	}

	// Unreachable for any real calendar date; the totality test sweeps the
	// full day-of-year domain to keep it that way.
	return ""
}
