package engine

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Minutes is an integer minute count. Older saved blobs (and raw user input)
// sometimes carry minute fields as strings; Minutes accepts either form on
// the way in so the in-memory model only ever holds integers.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*m = 0
			return nil
		}
		*m = ParseMinutes(raw)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*m = 0
		return nil
	}
	*m = clampMinutes(int(n))
	return nil
}

// ParseMinutes coerces textual minute input to a non-negative integer.
// Unparsable input normalizes to 0, never an error.
func ParseMinutes(input string) Minutes {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), "m"))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return clampMinutes(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clampMinutes(int(f))
	}
	return 0
}

func clampMinutes(n int) Minutes {
	if n < 0 {
		return 0
	}
	return Minutes(n)
}

// ClampPriority forces a priority into the 1..10 range (1 = highest).
func ClampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 10 {
		return 10
	}
	return p
}
