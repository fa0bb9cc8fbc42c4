package integration

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
)

// BusyFetcher pulls the current busy intervals for one integration from
// its external provider.
type BusyFetcher interface {
	FetchBusy(ctx context.Context, integ *CalendarIntegration, from, to time.Time) ([]busy.Interval, error)
}

// GoogleFetcher reads busy intervals from Google Calendar using the
// integration's stored OAuth token.
type GoogleFetcher struct {
	config *oauth2.Config
}

func NewGoogleFetcher(clientID, clientSecret, redirectURL string) *GoogleFetcher {
	return &GoogleFetcher{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL starts the OAuth consent flow for a new integration.
func (f *GoogleFetcher) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange turns a consent callback code into a token.
func (f *GoogleFetcher) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}
	return token, nil
}

func (f *GoogleFetcher) FetchBusy(ctx context.Context, integ *CalendarIntegration, from, to time.Time) ([]busy.Interval, error) {
	if integ.Token == nil {
		return nil, fmt.Errorf("integration %s has no token", integ.ID)
	}

	client := f.config.Client(ctx, integ.Token)
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	events, err := srv.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(2500).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	intervals := make([]busy.Interval, 0, len(events.Items))
	for _, item := range events.Items {
		if item.Status == "cancelled" || item.Transparency == "transparent" {
			continue
		}
		start, ok := parseEventTime(item.Start)
		if !ok {
			continue
		}
		end, ok := parseEventTime(item.End)
		if !ok || !start.Before(end) {
			continue
		}
		intervals = append(intervals, busy.Interval{
			Start:  start.UTC(),
			End:    end.UTC(),
			Source: busy.Source(integ.ID),
		})
	}
	return intervals, nil
}

// parseEventTime handles both timed events and all-day events, which
// carry a bare date instead of a datetime.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		return t, err == nil
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		return t, err == nil
	}
	return time.Time{}, false
}
