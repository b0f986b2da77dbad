package service

import (
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextRunTimeDaily(t *testing.T) {
	sc := &models.Schedule{ScheduleType: models.ScheduleDaily, ScheduleTime: "09:00"}

	cases := []struct {
		now  string
		want string
	}{
		{"2025-03-10 08:00", "2025-03-10 09:00"},
		{"2025-03-10 09:00", "2025-03-11 09:00"},
		{"2025-03-10 10:30", "2025-03-11 09:00"},
		{"2025-03-31 23:59", "2025-04-01 09:00"},
	}
	for _, tc := range cases {
		got, err := NextRunTime(sc, at(tc.now))
		if err != nil {
			t.Fatalf("now %s: %v", tc.now, err)
		}
		if !got.Equal(at(tc.want)) {
			t.Errorf("now %s: got %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestNextRunTimeWeeklyLandsOnListedDay(t *testing.T) {
	start := at("2025-03-09 00:00") // Sunday
	for day := 0; day <= 6; day++ {
		sc := &models.Schedule{
			ScheduleType: models.ScheduleWeekly,
			ScheduleTime: "18:30",
			ScheduleDays: encodeDays([]int{day}),
		}
		for h := 0; h < 7*24; h += 5 {
			now := start.Add(time.Duration(h) * time.Hour)
			got, err := NextRunTime(sc, now)
			if err != nil {
				t.Fatal(err)
			}
			if !got.After(now) || got.Sub(now) > 7*24*time.Hour {
				t.Fatalf("day %d now %s: %s not within the next week", day, now, got)
			}
			if int(got.Weekday()) != day || got.Hour() != 18 || got.Minute() != 30 {
				t.Fatalf("day %d now %s: got %s", day, now, got)
			}
		}
	}
}

func TestNextRunTimeWeeklyPicksEarliestDay(t *testing.T) {
	sc := &models.Schedule{
		ScheduleType: models.ScheduleWeekly,
		ScheduleTime: "09:00",
		ScheduleDays: "[1,4]",
	}
	// Monday after the slot: Thursday comes before next Monday.
	got, err := NextRunTime(sc, at("2025-03-10 12:00"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(at("2025-03-13 09:00")) {
		t.Fatalf("got %s", got)
	}
}

func TestNextRunTimeCustomAndOnce(t *testing.T) {
	now := at("2025-03-10 08:00")

	custom, err := NextRunTime(&models.Schedule{ScheduleType: models.ScheduleCustom, ScheduleTime: "09:00"}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !custom.Equal(at("2025-03-11 09:00")) {
		t.Fatalf("custom: got %s", custom)
	}

	stored := at("2025-05-01 07:15")
	once, err := NextRunTime(&models.Schedule{ScheduleType: models.ScheduleOnce, ScheduleTime: "09:00", NextRunAt: &stored}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !once.Equal(stored) {
		t.Fatalf("once: got %s, want stored %s", once, stored)
	}

	fresh, err := NextRunTime(&models.Schedule{ScheduleType: models.ScheduleOnce, ScheduleTime: "09:00"}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !fresh.Equal(at("2025-03-10 09:00")) {
		t.Fatalf("once without stored time: got %s", fresh)
	}
}

func TestNextRunTimeRejectsBadInput(t *testing.T) {
	now := at("2025-03-10 08:00")
	bad := []*models.Schedule{
		{ScheduleType: models.ScheduleDaily, ScheduleTime: "25:00"},
		{ScheduleType: models.ScheduleDaily, ScheduleTime: "9am"},
		{ScheduleType: models.ScheduleWeekly, ScheduleTime: "09:00", ScheduleDays: "[7]"},
		{ScheduleType: models.ScheduleWeekly, ScheduleTime: "09:00", ScheduleDays: "monday"},
		{ScheduleType: "hourly", ScheduleTime: "09:00"},
	}
	for _, sc := range bad {
		if _, err := NextRunTime(sc, now); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: err = %v, want ErrInvalidInput", sc, err)
		}
	}
}
