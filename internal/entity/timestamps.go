package entity

import "time"

// NextUpdatedAt garante que updatedAt avance estritamente a cada update.
func NextUpdatedAt(prev, now time.Time) time.Time {
	now = now.UTC()
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond).UTC()
}
