package features

// DelayThresholdMinutes separates on-time from delayed flights. A flight is
// delayed only when it operates strictly more than this many minutes late.
const DelayThresholdMinutes = 15.0

// BuildTarget derives the binary delay label from the minute difference
// between actual and scheduled operation. The threshold is strict: exactly
// 15 minutes late is still on time.
func BuildTarget(minutesDiff float64) int {
	if minutesDiff > DelayThresholdMinutes {
		return 1
	}
	return 0
}
