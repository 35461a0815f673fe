package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

const (
	calendarBaseURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	contactsURL     = "https://people.googleapis.com/v1/people/me/connections"
)

// Provider wire shapes. Only the fields we surface are decoded.

type providerEventTime struct {
	DateTime time.Time `json:"dateTime"`
}

type providerEvent struct {
	ID          string            `json:"id,omitempty"`
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Start       providerEventTime `json:"start"`
	End         providerEventTime `json:"end"`
}

func (e providerEvent) toEvent() Event {
	return Event{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Start:       e.Start.DateTime,
		End:         e.End.DateTime,
	}
}

func fromEvent(ev Event) providerEvent {
	return providerEvent{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       providerEventTime{DateTime: ev.Start},
		End:         providerEventTime{DateTime: ev.End},
	}
}

// ListEvents returns the account's upcoming events, soonest first.
func (s *Service) ListEvents(ctx context.Context, accountID uuid.UUID, from time.Time, max int) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", from.Format(time.RFC3339))
	q.Set("maxResults", fmt.Sprintf("%d", max))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	var out struct {
		Items []providerEvent `json:"items"`
	}

	if err := s.call(ctx, accountID, http.MethodGet, calendarBaseURL+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	events := make([]Event, len(out.Items))
	for i, item := range out.Items {
		events[i] = item.toEvent()
	}

	return events, nil
}

func (s *Service) CreateEvent(ctx context.Context, accountID uuid.UUID, ev Event) (*Event, error) {
	var out providerEvent
	if err := s.call(ctx, accountID, http.MethodPost, calendarBaseURL, fromEvent(ev), &out); err != nil {
		return nil, err
	}

	created := out.toEvent()

	return &created, nil
}

func (s *Service) GetEvent(ctx context.Context, accountID uuid.UUID, eventID string) (*Event, error) {
	var out providerEvent
	if err := s.call(ctx, accountID, http.MethodGet, calendarBaseURL+"/"+url.PathEscape(eventID), nil, &out); err != nil {
		return nil, err
	}

	ev := out.toEvent()

	return &ev, nil
}

func (s *Service) UpdateEvent(ctx context.Context, accountID uuid.UUID, eventID string, ev Event) (*Event, error) {
	var out providerEvent
	if err := s.call(ctx, accountID, http.MethodPut, calendarBaseURL+"/"+url.PathEscape(eventID), fromEvent(ev), &out); err != nil {
		return nil, err
	}

	updated := out.toEvent()

	return &updated, nil
}

func (s *Service) DeleteEvent(ctx context.Context, accountID uuid.UUID, eventID string) error {
	return s.call(ctx, accountID, http.MethodDelete, calendarBaseURL+"/"+url.PathEscape(eventID), nil, nil)
}

// ListContacts returns the account's contacts from the provider.
func (s *Service) ListContacts(ctx context.Context, accountID uuid.UUID) ([]Contact, error) {
	q := url.Values{}
	q.Set("personFields", "names,emailAddresses,phoneNumbers")
	q.Set("pageSize", "200")

	var out struct {
		Connections []struct {
			Names []struct {
				DisplayName string `json:"displayName"`
			} `json:"names"`
			EmailAddresses []struct {
				Value string `json:"value"`
			} `json:"emailAddresses"`
			PhoneNumbers []struct {
				Value string `json:"value"`
			} `json:"phoneNumbers"`
		} `json:"connections"`
	}

	if err := s.call(ctx, accountID, http.MethodGet, contactsURL+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(out.Connections))

	for _, conn := range out.Connections {
		var c Contact

		if len(conn.Names) > 0 {
			c.Name = conn.Names[0].DisplayName
		}

		if len(conn.EmailAddresses) > 0 {
			c.Email = conn.EmailAddresses[0].Value
		}

		if len(conn.PhoneNumbers) > 0 {
			c.Phone = conn.PhoneNumbers[0].Value
		}

		contacts = append(contacts, c)
	}

	return contacts, nil
}

// call performs one authenticated request against the provider. Local
// data is never touched here; any provider failure surfaces as
// apperr.ErrUnavailable.
func (s *Service) call(ctx context.Context, accountID uuid.UUID, method, u string, body, out any) error {
	tok, err := s.token(ctx, accountID)
	if err != nil {
		return err
	}

	var reqBody io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding provider request: %w", err)
		}

		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating provider request: %w", err)
	}

	tok.SetAuthHeader(req)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling provider: %v: %w", err, apperr.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperr.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider returned status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding provider response: %v: %w", err, apperr.ErrUnavailable)
	}

	return nil
}
