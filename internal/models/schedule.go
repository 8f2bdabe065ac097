package models

import (
	"sort"
	"strings"
	"time"
)

// Schedule is the set of weekdays on which a recurring tracker is expected.
// A nil schedule denotes an irregular (one-off) event, which matches every
// date. A non-nil schedule is a non-empty, deduplicated set.
type Schedule []time.Weekday

// scheduleDays is the fixed width of the persisted bitstring form.
const scheduleDays = 7

// MondayIndex maps a weekday to its Monday-first position (Monday=0 ...
// Sunday=6). This is the one canonical weekday convention in the codebase;
// both the persisted encoding and the filtered view use it.
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// NewSchedule builds a normalized schedule from the given weekdays:
// duplicates removed, Monday-first order. Returns nil for an empty input.
func NewSchedule(days ...time.Weekday) Schedule {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[time.Weekday]bool, len(days))
	var s Schedule
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			s = append(s, d)
		}
	}
	sort.Slice(s, func(i, j int) bool {
		return MondayIndex(s[i]) < MondayIndex(s[j])
	})
	return s
}

// Contains reports whether d is part of the schedule. A nil schedule
// contains every weekday.
func (s Schedule) Contains(d time.Weekday) bool {
	if s == nil {
		return true
	}
	for _, wd := range s {
		if wd == d {
			return true
		}
	}
	return false
}

// Encode returns the persisted bitstring form: seven characters, Monday
// first, '1' marking scheduled days ("1000100" = Monday and Friday). An
// empty schedule encodes to "".
func (s Schedule) Encode() string {
	if len(s) == 0 {
		return ""
	}
	bits := []byte("0000000")
	for _, d := range s {
		bits[MondayIndex(d)] = '1'
	}
	return string(bits)
}

// DecodeSchedule is the inverse of Encode. Unparseable input (wrong width,
// runes other than '0'/'1', no days set) decodes to nil; stray runes within
// a well-formed string are dropped rather than failing the record.
func DecodeSchedule(raw string) Schedule {
	if len(raw) != scheduleDays {
		return nil
	}
	var days []time.Weekday
	for i := 0; i < scheduleDays; i++ {
		if raw[i] == '1' {
			days = append(days, time.Weekday((i+1)%7))
		}
	}
	return NewSchedule(days...)
}

// String renders a short human-readable form, e.g. "Mon, Fri". An irregular
// schedule renders as "every day".
func (s Schedule) String() string {
	if s == nil {
		return "every day"
	}
	names := make([]string, 0, len(s))
	for _, d := range NewSchedule(s...) {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ", ")
}
