package util

import "time"

// millisThreshold is the smallest value with more than 10 decimal digits.
// Epochs at or above it are interpreted as milliseconds.
const millisThreshold = 10_000_000_000

// EpochSeconds normalizes an epoch that may be expressed in milliseconds.
func EpochSeconds(ts int64) int64 {
	if ts >= millisThreshold {
		return ts / 1000
	}
	return ts
}

// EpochTime converts a seconds-or-milliseconds epoch to a local time.
func EpochTime(ts int64) time.Time {
	return time.Unix(EpochSeconds(ts), 0)
}
