package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mosfeq/sportslink"
	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
)

// NewListCommand creates the list command.
func NewListCommand(app AppContext) *cobra.Command {
	var (
		sportFlag      string
		experienceFlag string
		dateFlag       string
		watch          bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "events",
		Short:   "List catalog events, optionally filtered",
		Long: `List shows the event catalog. Sport, experience, and date filters
compose: an event is shown only when it matches every active filter.

With --watch the command keeps running and reprints the list whenever
the catalog or the filtered view changes.`,
		Example: `  sportslink list
  sportslink list --sport Tennis --experience Beginner
  sportslink list --date 2026-09-05 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apply, err := filterSetters(sportFlag, experienceFlag, dateFlag)
			if err != nil {
				return err
			}

			if watch {
				link, err := app.Link(cmd.Context())
				if err != nil {
					return err
				}
				link.OnVisibleChanged(func(list []events.Event) {
					cmd.Println()
					printEvents(cmd.OutOrStdout(), list)
				})
				apply(link)

				<-cmd.Context().Done()
				return nil
			}

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			catalog, err := repo.Events(cmd.Context())
			if err != nil {
				return err
			}

			// One-shot listing filters a detached snapshot instead of
			// subscribing, with the same exclusion stage a watching
			// link applies.
			opts := []sportslink.Option{
				sportslink.WithInitialEvents(catalog),
				sportslink.WithLogger(app.Logger()),
				sportslink.WithExcludeHosted(app.ExcludeHosted()),
			}
			if viewer, err := repo.Viewer(); err == nil {
				opts = append(opts, sportslink.WithViewer(viewer))
			}

			link, err := sportslink.New(repo, opts...)
			if err != nil {
				return err
			}
			apply(link)

			printEvents(cmd.OutOrStdout(), link.Visible())
			return nil
		},
	}

	cmd.Flags().StringVar(&sportFlag, "sport", "", "only events for this sport")
	cmd.Flags().StringVar(&experienceFlag, "experience", "", "only events at this level")
	cmd.Flags().StringVar(&dateFlag, "date", "", "only events on this day (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and reprint on changes")

	return cmd
}

// filterSetters parses the filter flags and returns a function that
// applies them to a link. Parsing happens up front so flag errors
// surface before any subscription starts.
func filterSetters(sportFlag, experienceFlag, dateFlag string) (func(sportslink.SportsLink), error) {
	var setters []func(sportslink.SportsLink)

	if sportFlag != "" {
		sport, err := events.ParseSport(sportFlag)
		if err != nil {
			return nil, err
		}
		setters = append(setters, func(l sportslink.SportsLink) { l.SetSportFilter(sport) })
	}
	if experienceFlag != "" {
		experience, err := events.ParseExperience(experienceFlag)
		if err != nil {
			return nil, err
		}
		setters = append(setters, func(l sportslink.SportsLink) { l.SetExperienceFilter(experience) })
	}
	if dateFlag != "" {
		day, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
		if err != nil {
			return nil, errors.NewValidationError("date", dateFlag, "expected YYYY-MM-DD")
		}
		setters = append(setters, func(l sportslink.SportsLink) { l.SetDateFilter(day) })
	}

	return func(l sportslink.SportsLink) {
		for _, set := range setters {
			set(l)
		}
	}, nil
}
