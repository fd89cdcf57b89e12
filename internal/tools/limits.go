package tools

const (
	defaultLimit = 10
	maxLimit     = 30
)

// SafeLimit clamps a caller-requested result count to [1, maxLimit].
// Anything that is not a well-formed positive number falls back to the
// default. JSON numbers arrive as float64; ints are accepted for callers
// inside this process.
func SafeLimit(v any) int {
	var n int
	switch val := v.(type) {
	case float64:
		n = int(val)
	case int:
		n = val
	default:
		return defaultLimit
	}
	if n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
