package analytics

import "time"

const dayMs = int64(86400000)

// dayFloor truncates a millisecond timestamp to UTC midnight
func dayFloor(tsMs int64) int64 {
	rem := tsMs % dayMs
	if rem < 0 {
		rem += dayMs
	}
	return tsMs - rem
}

// dayKey formats a millisecond timestamp as a UTC calendar day
func dayKey(tsMs int64) string {
	return time.UnixMilli(tsMs).UTC().Format("2006-01-02")
}
