package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command
func NewVerifyCommand() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "verify EMAIL",
		Short: "Send a verification email",
		Long:  "Ask the server to send a verification email to an auth record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.Collection(collection).RequestVerification(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to request verification: %w", err)
			}

			fmt.Printf("Verification email requested for %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "users", "auth collection the record belongs to")

	return cmd
}
