package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default total timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultConnectTimeout is the default dial timeout.
	DefaultConnectTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled by default; these values apply only when
// a caller opts in via the transport's retry option.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination limits.
const (
	// MaxPerPage is the server-imposed ceiling on the perPage query parameter.
	MaxPerPage = 500

	// DefaultPerPage is the server default page size when perPage is omitted.
	DefaultPerPage = 30
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Display constants.
const (
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
