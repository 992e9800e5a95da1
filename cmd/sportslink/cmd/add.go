package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
)

// NewAddCommand creates the add command.
func NewAddCommand(app AppContext) *cobra.Command {
	var (
		sportFlag      string
		location       string
		dateFlag       string
		timeFlag       string
		experienceFlag string
		players        string
	)

	cmd := &cobra.Command{
		Use:     "add <title>",
		GroupID: "events",
		Short:   "Publish a new event to the catalog",
		Long: `Add publishes a new event hosted by the signed-in user.

The title doubles as the catalog record key: publishing a second event
with an existing title overwrites the first one.`,
		Args: cobra.ExactArgs(1),
		Example: `  sportslink add "Morning fives" --sport Football --location "Victoria Park" \
    --date 2026-09-05 --time 09:30 --experience Beginner --players 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			title := strings.TrimSpace(args[0])

			sport, err := events.ParseSport(sportFlag)
			if err != nil {
				return err
			}
			experience, err := events.ParseExperience(experienceFlag)
			if err != nil {
				return err
			}
			date, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
			if err != nil {
				return errors.NewValidationError("date", dateFlag, "expected YYYY-MM-DD")
			}
			timeOfDay, err := time.ParseInLocation("2006-01-02 15:04", dateFlag+" "+timeFlag, time.Local)
			if err != nil {
				return errors.NewValidationError("time", timeFlag, "expected HH:MM")
			}

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			profile, err := repo.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			ev := events.New(title, sport, location, date, timeOfDay, experience, profile.Name, profile.Email)
			ev = ev.WithPlayers(players)

			if err := repo.AddEvent(cmd.Context(), ev); err != nil {
				return err
			}

			cmd.Printf("Added %q on %s at %s\n", ev.Title, ev.Date.Format("2006-01-02"), ev.Time.Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&sportFlag, "sport", "", "sport, e.g. Football or \"Table Tennis\"")
	cmd.Flags().StringVar(&location, "location", "", "where the event takes place")
	cmd.Flags().StringVar(&dateFlag, "date", "", "event date as YYYY-MM-DD")
	cmd.Flags().StringVar(&timeFlag, "time", "", "start time as HH:MM")
	cmd.Flags().StringVar(&experienceFlag, "experience", "", "expected level: Beginner, Intermediate, Expert")
	cmd.Flags().StringVar(&players, "players", "", "number of players wanted")

	for _, required := range []string{"sport", "location", "date", "time", "experience"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}
