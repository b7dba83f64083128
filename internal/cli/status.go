package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Calls the server's health endpoint, which also checks its database.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()

	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	if err := newAPIClient().Health(); err != nil {
		fmt.Fprintf(out, "Status:  ✗ %v\n", err)
		return nil
	}

	fmt.Fprintln(out, "Status:  ✓ healthy")
	return nil
}
