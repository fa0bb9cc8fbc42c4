package availability

import (
	"iter"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

// Slot is a single offerable meeting time. Both bounds are UTC and the
// interval is half-open.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Params describe one slot computation. Busy must already be merged and
// clipped to [From, To). From and To are UTC.
type Params struct {
	Timezone string
	Hours    owner.WeeklyHours
	Duration time.Duration
	Buffer   time.Duration
	From     time.Time
	To       time.Time
	Busy     []busy.Interval
}

// Slots walks the owner's working windows day by day in the owner's
// timezone and yields every free slot lazily, in ascending order.
func Slots(p Params) (iter.Seq[Slot], error) {
	loc, err := timezone.LoadLocation(p.Timezone)
	if err != nil {
		return nil, err
	}

	blocked := busy.Merge(p.Busy)
	if p.Buffer > 0 {
		blocked = busy.Pad(blocked, p.Buffer, p.From, p.To)
	}

	return func(yield func(Slot) bool) {
		day := p.From.In(loc)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		for day.Before(p.To) {
			winStart, winEnd, ok := dayWindow(day, p.Hours, loc)
			if ok && walkWindow(winStart, winEnd, p, blocked, yield) {
				return
			}
			day = day.AddDate(0, 0, 1)
		}
	}, nil
}

// dayWindow resolves the working window of the calendar day starting at
// midnight in day's location. DST gaps and overlaps resolve per the
// timezone package rules.
func dayWindow(day time.Time, hours owner.WeeklyHours, loc *time.Location) (time.Time, time.Time, bool) {
	dh := hours[int(day.Weekday())]
	if !dh.Enabled {
		return time.Time{}, time.Time{}, false
	}

	startH, startM, err := timezone.ParseClock(dh.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endH, endM, err := timezone.ParseClock(dh.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	zone := loc.String()
	start, err := timezone.ToUTC(timezone.WallClock{
		Year: day.Year(), Month: day.Month(), Day: day.Day(),
		Hour: startH, Minute: startM,
	}, zone)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := timezone.ToUTC(timezone.WallClock{
		Year: day.Year(), Month: day.Month(), Day: day.Day(),
		Hour: endH, Minute: endM,
	}, zone)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// walkWindow steps through one working window emitting free slots. When
// a candidate collides with a blocked region, the cursor jumps to that
// region's end and keeps stepping by the slot duration from there.
// Returns true when the consumer stopped the iteration.
func walkWindow(winStart, winEnd time.Time, p Params, blocked []busy.Interval, yield func(Slot) bool) bool {
	if winStart.Before(p.From) {
		winStart = advanceTo(winStart, p.From, p.Duration)
	}
	if winEnd.After(p.To) {
		winEnd = p.To
	}

	cur := winStart
	for !cur.Add(p.Duration).After(winEnd) {
		end := cur.Add(p.Duration)
		if iv, hit := firstBlock(blocked, cur, end, p.Buffer > 0); hit {
			if iv.End.After(cur) {
				cur = iv.End
			} else {
				cur = cur.Add(p.Duration)
			}
			continue
		}
		if !yield(Slot{Start: cur, End: end}) {
			return true
		}
		cur = end
	}
	return false
}

// firstBlock finds the earliest blocked interval colliding with the
// candidate [start, end). With padding active the comparison treats the
// padded bounds as closed, so a slot may not begin or finish exactly on
// a padded edge.
func firstBlock(blocked []busy.Interval, start, end time.Time, padded bool) (busy.Interval, bool) {
	for _, iv := range blocked {
		if padded {
			if !iv.End.Before(start) && !iv.Start.After(end) {
				return iv, true
			}
			continue
		}
		if iv.Overlaps(start, end) {
			return iv, true
		}
	}
	return busy.Interval{}, false
}

// advanceTo moves cursor forward in whole steps until it is not before
// floor, keeping slot starts aligned with the window start.
func advanceTo(cursor, floor time.Time, step time.Duration) time.Time {
	for cursor.Before(floor) {
		cursor = cursor.Add(step)
	}
	return cursor
}
