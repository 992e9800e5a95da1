package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mosfeq/sportslink/pkg/store"
)

// NewJoinCommand creates the join command.
func NewJoinCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "join <title>",
		GroupID: "events",
		Short:   "Join an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}

			ev, err := findByTitle(cmd, app, args[0])
			if err != nil {
				return err
			}

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			if err := repo.JoinEvent(cmd.Context(), ev); err != nil {
				return err
			}

			cmd.Printf("Joined %q\n", ev.Title)
			return nil
		},
	}
}

// NewLeaveCommand creates the leave command.
func NewLeaveCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "leave <title>",
		GroupID: "events",
		Short:   "Leave a joined event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}

			ev, err := findByTitle(cmd, app, args[0])
			if err != nil {
				return err
			}

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			if err := repo.LeaveEvent(cmd.Context(), ev); err != nil {
				return err
			}

			cmd.Printf("Left %q\n", ev.Title)
			return nil
		},
	}
}

// NewRemoveCommand creates the remove command. It deletes the catalog
// record directly so the command can report completion, unlike the
// in-app fire-and-forget removal.
func NewRemoveCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <title>",
		GroupID: "events",
		Short:   "Remove a hosted event from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), store.EventPath(args[0])); err != nil {
				return err
			}

			cmd.Printf("Removed %q\n", args[0])
			return nil
		},
	}
}
