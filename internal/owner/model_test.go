package owner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekly(day time.Weekday, start, end string) WeeklyHours {
	var hours WeeklyHours
	for i := range hours {
		hours[i].Weekday = time.Weekday(i)
	}
	hours[day] = DayHours{Weekday: day, Enabled: true, Start: start, End: end}
	return hours
}

func TestWeeklyHoursValidate(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		assert.NoError(t, weekly(time.Monday, "09:00", "17:00").Validate())
	})

	t.Run("all days disabled is fine", func(t *testing.T) {
		var hours WeeklyHours
		assert.NoError(t, hours.Validate())
	})

	t.Run("start equal to end", func(t *testing.T) {
		assert.ErrorIs(t, weekly(time.Monday, "09:00", "09:00").Validate(), ErrInvalidDayWindow)
	})

	t.Run("start after end", func(t *testing.T) {
		assert.ErrorIs(t, weekly(time.Friday, "18:00", "09:00").Validate(), ErrInvalidDayWindow)
	})

	t.Run("unparseable clock", func(t *testing.T) {
		assert.Error(t, weekly(time.Monday, "9am", "17:00").Validate())
	})

	t.Run("disabled day with bad clock is ignored", func(t *testing.T) {
		hours := weekly(time.Monday, "09:00", "17:00")
		hours[time.Tuesday].Start = "garbage"
		assert.NoError(t, hours.Validate())
	})
}
