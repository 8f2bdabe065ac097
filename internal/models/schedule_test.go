package models

import (
	"testing"
	"time"
)

func TestMondayIndex(t *testing.T) {
	cases := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}
	for day, want := range cases {
		if got := MondayIndex(day); got != want {
			t.Errorf("MondayIndex(%s) = %d, want %d", day, got, want)
		}
	}
}

func TestScheduleEncode(t *testing.T) {
	t.Run("monday and friday", func(t *testing.T) {
		s := NewSchedule(time.Friday, time.Monday)
		if got := s.Encode(); got != "1000100" {
			t.Errorf("Encode() = %q, want %q", got, "1000100")
		}
	})

	t.Run("sunday lands last", func(t *testing.T) {
		s := NewSchedule(time.Sunday)
		if got := s.Encode(); got != "0000001" {
			t.Errorf("Encode() = %q, want %q", got, "0000001")
		}
	})

	t.Run("nil encodes empty", func(t *testing.T) {
		var s Schedule
		if got := s.Encode(); got != "" {
			t.Errorf("Encode() = %q, want empty", got)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		s := NewSchedule(time.Monday, time.Monday, time.Monday)
		if len(s) != 1 {
			t.Fatalf("len = %d, want 1", len(s))
		}
	})
}

func TestDecodeSchedule(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewSchedule(time.Monday, time.Wednesday, time.Sunday)
		decoded := DecodeSchedule(original.Encode())
		if len(decoded) != len(original) {
			t.Fatalf("decoded %d days, want %d", len(decoded), len(original))
		}
		for i := range original {
			if decoded[i] != original[i] {
				t.Errorf("day %d = %s, want %s", i, decoded[i], original[i])
			}
		}
	})

	t.Run("wrong width decodes to nil", func(t *testing.T) {
		for _, raw := range []string{"", "1", "10001000", "101"} {
			if got := DecodeSchedule(raw); got != nil {
				t.Errorf("DecodeSchedule(%q) = %v, want nil", raw, got)
			}
		}
	})

	t.Run("all zeros decodes to nil", func(t *testing.T) {
		if got := DecodeSchedule("0000000"); got != nil {
			t.Errorf("DecodeSchedule(all zeros) = %v, want nil", got)
		}
	})

	t.Run("stray runes are dropped", func(t *testing.T) {
		got := DecodeSchedule("1x000x0")
		if len(got) != 1 || got[0] != time.Monday {
			t.Errorf("DecodeSchedule = %v, want [Monday]", got)
		}
	})
}

func TestScheduleContains(t *testing.T) {
	t.Run("nil contains every weekday", func(t *testing.T) {
		var s Schedule
		for d := time.Sunday; d <= time.Saturday; d++ {
			if !s.Contains(d) {
				t.Errorf("nil schedule missing %s", d)
			}
		}
	})

	t.Run("non-nil contains only its days", func(t *testing.T) {
		s := NewSchedule(time.Tuesday)
		if !s.Contains(time.Tuesday) {
			t.Error("schedule missing Tuesday")
		}
		if s.Contains(time.Wednesday) {
			t.Error("schedule contains Wednesday unexpectedly")
		}
	})
}

func TestScheduleString(t *testing.T) {
	if got := NewSchedule(time.Friday, time.Monday).String(); got != "Mon, Fri" {
		t.Errorf("String() = %q, want %q", got, "Mon, Fri")
	}
	var s Schedule
	if got := s.String(); got != "every day" {
		t.Errorf("String() = %q, want %q", got, "every day")
	}
}
