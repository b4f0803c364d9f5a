package weather

import (
	"testing"
	"time"
)

// TestNormalizeDate verifies that every timestamp within one local calendar
// day maps to the same local midnight, and that the mapping is idempotent.
func TestNormalizeDate(t *testing.T) {
	noon := time.Date(2024, time.March, 5, 12, 30, 45, 0, time.Local)
	evening := time.Date(2024, time.March, 5, 23, 59, 59, 0, time.Local)
	midnight := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)

	got := NormalizeDate(noon.UnixMilli())
	if got != midnight.UnixMilli() {
		t.Fatalf("expected %d, got %d", midnight.UnixMilli(), got)
	}
	if other := NormalizeDate(evening.UnixMilli()); other != got {
		t.Fatalf("same-day timestamps normalized differently: %d vs %d", got, other)
	}
	if again := NormalizeDate(got); again != got {
		t.Fatalf("normalization is not idempotent: %d vs %d", got, again)
	}
}

func TestFriendlyDay(t *testing.T) {
	now := time.Date(2024, time.March, 5, 15, 0, 0, 0, time.Local)
	day := func(offset int) int64 {
		return StartOfDay(now).AddDate(0, 0, offset).UnixMilli()
	}

	cases := []struct {
		offset int
		want   string
	}{
		{0, "Today"},
		{1, "Tomorrow"},
		{2, "Thursday"},
		{6, "Monday"},
		{7, "Tue Mar 12"},
	}
	for _, tc := range cases {
		if got := FriendlyDay(day(tc.offset), now); got != tc.want {
			t.Errorf("offset %d: expected %q, got %q", tc.offset, tc.want, got)
		}
	}
}
