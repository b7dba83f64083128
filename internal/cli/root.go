// Package cli defines the cobra command tree for the comments tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/client"
)

var (
	flagFormat   string
	flagServer   string
	flagBasePath string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "comments",
		Short:         "Serve and manage comments",
		Long:          "A small comments service. Run the REST API with 'serve', or list, add and remove comments on a running server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: $COMMENTS_SERVER_URL, config, or http://localhost:8080)")
	root.PersistentFlags().StringVar(&flagBasePath, "base-path", "", "path the server mounts comments on (default: $COMMENTS_BASE_PATH, config, or /api/comments)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the comments API.
func newAPIClient() *client.Client {
	return client.New(getServerURL()).WithBasePath(getBasePath())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
