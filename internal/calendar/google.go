package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CredentialSource resolves a user's stored Google refresh token and display
// fields. An empty token means offline access was never granted.
type CredentialSource interface {
	GoogleCredential(ctx context.Context, userID int64) (refreshToken, email, name string, err error)
}

// GoogleScheduler creates Calendar events with Meet links on the therapist's
// primary calendar, authorized by the refresh token stored at login.
type GoogleScheduler struct {
	oauth       *oauth2.Config
	credentials CredentialSource
}

func NewGoogleScheduler(clientID, clientSecret, redirectURL string, credentials CredentialSource) *GoogleScheduler {
	return &GoogleScheduler{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendarapi.CalendarEventsScope},
		},
		credentials: credentials,
	}
}

func (g *GoogleScheduler) serviceFor(ctx context.Context, userID int64) (*calendarapi.Service, string, error) {
	refreshToken, email, _, err := g.credentials.GoogleCredential(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve credential: %w", err)
	}
	if refreshToken == "" {
		return nil, "", ErrNoCredential
	}

	source := g.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, "", fmt.Errorf("build calendar service: %w", err)
	}

	return svc, email, nil
}

// CreateEvent inserts the session on the therapist's calendar with a Meet
// conference and both parties as attendees, and returns the event reference.
func (g *GoogleScheduler) CreateEvent(ctx context.Context, req EventRequest) (*Event, error) {
	svc, therapistEmail, err := g.serviceFor(ctx, req.TherapistID)
	if err != nil {
		return nil, err
	}

	clientName := req.ClientName
	if clientName == "" {
		clientName = "Client"
	}

	event := &calendarapi.Event{
		Summary:     fmt.Sprintf("Therapy session with %s", clientName),
		Description: "Session booked via ryyderbros_wellness",
		Start:       &calendarapi.EventDateTime{DateTime: req.StartTime.Format(time.RFC3339)},
		End:         &calendarapi.EventDateTime{DateTime: req.EndTime.Format(time.RFC3339)},
		Attendees: []*calendarapi.EventAttendee{
			{Email: therapistEmail},
			{Email: req.ClientEmail},
		},
		ConferenceData: &calendarapi.ConferenceData{
			CreateRequest: &calendarapi.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendarapi.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &calendarapi.EventReminders{
			UseDefault: false,
			Overrides: []*calendarapi.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}

	// Meet link lives in HangoutLink, or in the conference entry points on
	// some responses.
	meetLink := created.HangoutLink
	if meetLink == "" && created.ConferenceData != nil {
		for _, entry := range created.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" {
				meetLink = entry.Uri
				break
			}
		}
	}

	return &Event{EventID: created.Id, MeetLink: meetLink}, nil
}

// CancelEvent deletes the event from the therapist's calendar, notifying
// attendees. Deleting an already-deleted event reports an error the caller
// is expected to swallow.
func (g *GoogleScheduler) CancelEvent(ctx context.Context, therapistID int64, eventID string) error {
	if eventID == "" {
		return nil
	}

	svc, _, err := g.serviceFor(ctx, therapistID)
	if err != nil {
		return err
	}

	err = svc.Events.Delete("primary", eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}

	return nil
}
