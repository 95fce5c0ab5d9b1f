package util

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FloorZero clamps a delta-applied value at zero. Reputation and fan counts
// must never go negative in stored state even when the transient delta is.
func FloorZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// ClampScore confines an AI-provided score to the 0-100 band.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
