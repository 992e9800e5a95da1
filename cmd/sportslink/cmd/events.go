package cmd

import (
	"github.com/spf13/cobra"
)

// NewEventsCommand creates the events command with its hosted and
// joined subcommands.
func NewEventsCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		GroupID: "events",
		Short:   "Show your hosted and joined events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newHostedCommand(app))
	cmd.AddCommand(newJoinedCommand(app))

	return cmd
}

func newHostedCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hosted",
		Short: "List events you host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			repo, err := app.Repository()
			if err != nil {
				return err
			}
			list, err := repo.HostedEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func newJoinedCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "joined",
		Short: "List events you have joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			repo, err := app.Repository()
			if err != nil {
				return err
			}
			list, err := repo.JoinedEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), list)
			return nil
		},
	}
}
