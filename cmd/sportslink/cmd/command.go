// Package cmd contains the sportslink CLI subcommands. Commands receive
// their dependencies through the AppContext interface so they stay
// decoupled from the concrete app and easy to test.
package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mosfeq/sportslink"
	"github.com/mosfeq/sportslink/internal/server"
	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/repository"
	"github.com/mosfeq/sportslink/pkg/store/remote"
)

// AppContext defines the interface that commands need from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	ExcludeHosted() bool
	Client() (*remote.Client, error)
	Repository() (*repository.Repository, error)
	Link(ctx context.Context, opts ...sportslink.Option) (sportslink.SportsLink, error)
	SaveSession() error
	ClearSession() error
	RequireSession() error
	ServerConfig() server.Config
}

// printEvents writes events as an aligned table.
func printEvents(w io.Writer, list []events.Event) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No events found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tSPORT\tLOCATION\tDATE\tTIME\tEXPERIENCE\tHOST")
	for _, ev := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ev.Title,
			ev.Sport,
			ev.Location,
			ev.Date.Format("2006-01-02"),
			ev.Time.Format("15:04"),
			ev.Experience,
			ev.Host,
		)
	}
	_ = tw.Flush()
}

// findByTitle fetches the catalog and looks up an event by title.
func findByTitle(cmd *cobra.Command, app AppContext, title string) (events.Event, error) {
	repo, err := app.Repository()
	if err != nil {
		return events.Event{}, err
	}
	list, err := repo.Events(cmd.Context())
	if err != nil {
		return events.Event{}, err
	}
	for _, ev := range list {
		if ev.Title == title {
			return ev, nil
		}
	}
	return events.Event{}, fmt.Errorf("event %q not found", title)
}
