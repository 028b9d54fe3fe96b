package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewImpersonateCommand creates the impersonate command
func NewImpersonateCommand() *cobra.Command {
	var (
		collection string
		duration   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "impersonate RECORD_ID",
		Short: "Impersonate an auth record",
		Long: `Obtain a token for another auth record. Requires superuser
authorization; the token is printed, the stored session stays unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			builder := client.Collection(collection).Impersonate(args[0])
			if duration > 0 {
				builder = builder.Duration(duration)
			}

			impersonated, err := builder.Call(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to impersonate: %w", err)
			}

			store := impersonated.AuthStore()

			return renderOutput(record{
				"token":  store.Token,
				"record": store.Record.ID,
			})
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "users", "auth collection the record belongs to")
	cmd.Flags().DurationVar(&duration, "duration", 0, "token lifetime, e.g. 1h (server default when omitted)")

	return cmd
}
