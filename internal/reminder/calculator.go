package reminder

import "time"

// Channel identifies the delivery medium for a reminder.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// FireTimes derives one absolute UTC fire instant per offset, computed as
// startUTC minus the offset in minutes. Fire times already in the past are
// still returned; suppressing them is the delivery collaborator's call,
// not ours.
func FireTimes(startUTC time.Time, offsetMinutes []int) []time.Time {
	if len(offsetMinutes) == 0 {
		return nil
	}
	times := make([]time.Time, 0, len(offsetMinutes))
	for _, offset := range offsetMinutes {
		times = append(times, startUTC.Add(-time.Duration(offset)*time.Minute).UTC())
	}
	return times
}
