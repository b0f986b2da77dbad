package service

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/transfer"
)

func parseClock(s string) (hour, minute int, err error) {
	if !transfer.IsClock(s) {
		return 0, 0, invalid("schedule time %q is not HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, invalid("schedule time %q: %v", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

func parseDays(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, invalid("schedule days %q: %v", raw, err)
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, invalid("weekday %d out of range", d)
		}
	}
	return days, nil
}

func encodeDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	b, _ := json.Marshal(days)
	return string(b)
}

// NextRunTime computes when a schedule should fire next, relative to now.
// The candidate is today at HH:MM, pushed to tomorrow once that moment is
// reached. once schedules keep their stored time.
func NextRunTime(s *models.Schedule, now time.Time) (*time.Time, error) {
	hour, minute, err := parseClock(s.ScheduleTime)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	candidate := today
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	switch s.ScheduleType {
	case models.ScheduleDaily:
	case models.ScheduleWeekly:
		days, err := parseDays(s.ScheduleDays)
		if err != nil {
			return nil, err
		}
		if len(days) == 0 {
			break
		}
		listed := make(map[time.Weekday]bool, len(days))
		for _, d := range days {
			listed[time.Weekday(d)] = true
		}
		for i := 0; i <= 7; i++ {
			slot := today.AddDate(0, 0, i)
			if slot.After(now) && listed[slot.Weekday()] {
				candidate = slot
				break
			}
		}
	case models.ScheduleCustom:
		candidate = candidate.AddDate(0, 0, 1)
	case models.ScheduleOnce:
		if s.NextRunAt != nil {
			next := *s.NextRunAt
			return &next, nil
		}
	default:
		return nil, invalid("unknown schedule type %q", s.ScheduleType)
	}
	return &candidate, nil
}
