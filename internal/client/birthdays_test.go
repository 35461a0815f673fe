package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/client"
)

func birthdayClient(name string, month time.Month, day int) *client.Client {
	return birthdayClientInYear(name, 1990, month, day)
}

func birthdayClientInYear(name string, year int, month time.Month, day int) *client.Client {
	b := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &client.Client{ID: uuid.New(), Name: name, Birthday: &b}
}

func TestService_UpcomingBirthdays(t *testing.T) {
	accountID := uuid.New()

	type testCase struct {
		name      string
		now       time.Time
		clients   []*client.Client
		wantNames []string
	}

	tests := []testCase{
		{
			name: "MidYearWindow",
			now:  time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			clients: []*client.Client{
				birthdayClient("too late", time.June, 9),
				birthdayClient("in window", time.June, 5),
				birthdayClient("today", time.June, 1),
				birthdayClient("long gone", time.January, 10),
			},
			wantNames: []string{"today", "in window"},
		},
		{
			// 2026 is not a leap year: Dec 28 is day 362 of 365, so the
			// seven-day window spills into early January.
			name: "YearEndWraparound",
			now:  time.Date(2026, 12, 28, 9, 0, 0, 0, time.UTC),
			clients: []*client.Client{
				birthdayClient("dec 29", time.December, 29),
				birthdayClient("jan 2", time.January, 2),
				birthdayClient("dec 30", time.December, 30),
				birthdayClient("jan 10", time.January, 10),
				birthdayClient("july", time.July, 1),
			},
			wantNames: []string{"jan 2", "dec 29", "dec 30"},
		},
		{
			// Dec 30 2026 is day 364 of a common year. A Dec 29
			// birthday recorded in a leap year is also day 364, so it
			// sits at the start of the window instead of one day
			// behind it.
			name: "LeapYearBirthdayAtWindowStart",
			now:  time.Date(2026, 12, 30, 9, 0, 0, 0, time.UTC),
			clients: []*client.Client{
				birthdayClientInYear("dec 29", 1992, time.December, 29),
				birthdayClient("jan 5", time.January, 5),
				birthdayClient("dec 20", time.December, 20),
			},
			wantNames: []string{"jan 5", "dec 29"},
		},
		{
			name:      "NoBirthdays",
			now:       time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			clients:   nil,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			repo.EXPECT().ListWithBirthday(gomock.Any(), accountID).Return(tt.clients, nil)

			svc := client.NewService(repo)
			got, err := svc.UpcomingBirthdays(context.Background(), accountID, tt.now)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}
