package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		serverURL  string
		collection string
		identity   string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a PocketBase server",
		Long:  "Authenticate against an auth collection and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = viper.GetString("url")
			}

			if serverURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				serverURL, _ = reader.ReadString('\n')
				serverURL = strings.TrimSpace(serverURL)
			}

			if serverURL == "" {
				return ErrURLRequired
			}

			if identity == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Identity (email): ")
				identity, _ = reader.ReadString('\n')
				identity = strings.TrimSpace(identity)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			viper.Set("url", serverURL)

			client, err := newClient()
			if err != nil {
				return err
			}

			store, err := client.Collection(collection).AuthWithPassword(cmd.Context(), identity, password)
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			if err := saveSession(serverURL, store.Token); err != nil {
				return err
			}

			fmt.Printf("Successfully logged in to %s as %s\n", serverURL, store.Record.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", "", "PocketBase server URL")
	cmd.Flags().StringVar(&collection, "collection", "_superusers", "auth collection to authenticate against")
	cmd.Flags().StringVarP(&identity, "identity", "u", "", "identity (usually an email address)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the PocketBase server",
		Long:  "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearSession(); err != nil {
				return err
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
