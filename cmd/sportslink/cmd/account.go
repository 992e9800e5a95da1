package cmd

import (
	"github.com/spf13/cobra"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(app AppContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "register <email> <password>",
		GroupID: "account",
		Short:   "Create an account and sign in",
		Args:    cobra.ExactArgs(2),
		Example: `  sportslink register jo@example.com secret --name "Jo Smith"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password := args[0], args[1]

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			if err := repo.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			if err := app.SaveSession(); err != nil {
				return err
			}

			cmd.Printf("Registered and signed in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name shown as event host")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// NewSignInCommand creates the signin command.
func NewSignInCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "signin <email> <password>",
		GroupID: "account",
		Short:   "Sign in to an existing account",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password := args[0], args[1]

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			if err := repo.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}
			if err := app.SaveSession(); err != nil {
				return err
			}

			cmd.Printf("Signed in as %s\n", email)
			return nil
		},
	}
}

// NewSignOutCommand creates the signout command.
func NewSignOutCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "signout",
		GroupID: "account",
		Short:   "Discard the saved session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.ClearSession(); err != nil {
				return err
			}
			cmd.Println("Signed out")
			return nil
		},
	}
}
