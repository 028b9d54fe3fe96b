package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fromhorizons/pocketbase-go/pkg/pocketbase"
)

// NewRecordsCommand creates the records command group
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record", "r"},
		Short:   "Manage collection records",
		Long:    "List, view, create, update and delete records of a collection",
	}

	cmd.AddCommand(newRecordsListCommand())
	cmd.AddCommand(newRecordsGetCommand())
	cmd.AddCommand(newRecordsCreateCommand())
	cmd.AddCommand(newRecordsUpdateCommand())
	cmd.AddCommand(newRecordsDeleteCommand())

	return cmd
}

func newRecordsListCommand() *cobra.Command {
	var (
		page      int
		perPage   int
		sort      string
		filter    string
		expand    string
		skipTotal bool
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list COLLECTION",
		Short: "List records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			collection := client.Collection(args[0])

			if all {
				records, err := pocketbase.GetFullList[record](collection).
					Sort(sort).
					Filter(filter).
					Expand(expand).
					Call(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list records: %w", err)
				}

				return renderOutput(records)
			}

			builder := pocketbase.GetList[record](collection).
				Sort(sort).
				Filter(filter).
				Expand(expand)

			if page > 0 {
				builder = builder.Page(page)
			}

			if perPage > 0 {
				builder = builder.PerPage(perPage)
			}

			if skipTotal {
				builder = builder.SkipTotal()
			}

			list, err := builder.Call(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			if err := renderOutput(list.Items); err != nil {
				return err
			}

			if list.TotalItems >= 0 {
				fmt.Printf("\nPage %d of %d (%d records)\n", list.Page, list.TotalPages, list.TotalItems)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "records per page (max 500)")
	cmd.Flags().StringVar(&sort, "sort", "", "sort expression, e.g. '-created'")
	cmd.Flags().StringVar(&filter, "filter", "", "filter expression")
	cmd.Flags().StringVar(&expand, "expand", "", "relations to expand")
	cmd.Flags().BoolVar(&skipTotal, "skip-total", false, "skip the totals count for a cheaper query")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func newRecordsGetCommand() *cobra.Command {
	var expand string

	cmd := &cobra.Command{
		Use:   "get COLLECTION RECORD_ID",
		Short: "Show a single record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := pocketbase.GetOne[record](client.Collection(args[0]), args[1]).
				Expand(expand).
				Call(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get record: %w", err)
			}

			return renderOutput(result)
		},
	}

	cmd.Flags().StringVar(&expand, "expand", "", "relations to expand")

	return cmd
}

func newRecordsCreateCommand() *cobra.Command {
	var (
		data   string
		fields []string
		files  []string
	)

	cmd := &cobra.Command{
		Use:   "create COLLECTION",
		Short: "Create a record",
		Long: `Create a record from inline JSON or individual fields.

File attachments switch the request to a multipart form:

  pbc records create articles --field title=hello --file cover=./cover.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			collection := client.Collection(args[0])

			var created *pocketbase.WriteResponse

			if len(files) > 0 {
				form, err := buildForm(data, fields, files)
				if err != nil {
					return err
				}

				created, err = collection.CreateMultipart(cmd.Context(), form)
				if err != nil {
					return fmt.Errorf("failed to create record: %w", err)
				}
			} else {
				body, err := buildBody(data, fields)
				if err != nil {
					return err
				}

				created, err = collection.Create(cmd.Context(), body)
				if err != nil {
					return fmt.Errorf("failed to create record: %w", err)
				}
			}

			fmt.Printf("Created record %s in %s\n", created.ID, created.CollectionName)

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "record data as a JSON object")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "record field as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file attachment as field=path (repeatable)")

	return cmd
}

func newRecordsUpdateCommand() *cobra.Command {
	var (
		data   string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "update COLLECTION RECORD_ID",
		Short: "Update a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			body, err := buildBody(data, fields)
			if err != nil {
				return err
			}

			updated, err := client.Collection(args[0]).Update(cmd.Context(), args[1], body)
			if err != nil {
				return fmt.Errorf("failed to update record: %w", err)
			}

			fmt.Printf("Updated record %s\n", updated.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "record data as a JSON object")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "record field as name=value (repeatable)")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COLLECTION RECORD_ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.Collection(args[0]).Delete(cmd.Context(), args[1]); err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}

			fmt.Printf("Deleted record %s\n", args[1])

			return nil
		},
	}
}

// buildBody merges --data JSON with --field pairs, the pairs winning.
func buildBody(data string, fields []string) (record, error) {
	body := record{}

	if data != "" {
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return nil, fmt.Errorf("invalid --data JSON: %w", err)
		}
	}

	for _, field := range fields {
		name, value, found := strings.Cut(field, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldFormat, field)
		}

		body[name] = value
	}

	if len(body) == 0 {
		return nil, ErrDataRequired
	}

	return body, nil
}

// buildForm assembles a multipart form from field pairs and file attachments.
// A create may carry files only, so an empty body is fine here; malformed
// data still fails.
func buildForm(data string, fields []string, files []string) (*pocketbase.Form, error) {
	body, err := buildBody(data, fields)
	if err != nil && !errors.Is(err, ErrDataRequired) {
		return nil, err
	}

	form := pocketbase.NewForm()

	for name, value := range body {
		form = form.Text(name, fmt.Sprintf("%v", value))
	}

	for _, file := range files {
		field, path, found := strings.Cut(file, "=")
		if !found || field == "" || path == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFileFormat, file)
		}

		handle, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = handle.Close() }()

		form = form.File(field, filepath.Base(path), handle)
	}

	return form, nil
}
