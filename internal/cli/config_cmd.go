package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective CLI settings",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Save a CLI setting (server_url, base_path or author)",
			Args:  cobra.ExactArgs(2),
			RunE:  runConfigSet,
		},
	)

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	settings := map[string]string{
		"server_url": getServerURL(),
		"base_path":  getBasePath(),
		"author":     getAuthor(""),
	}

	if isJSON() {
		return printJSON(out, settings)
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config:     %s\n", path)
	fmt.Fprintf(out, "server_url: %s\n", settings["server_url"])
	fmt.Fprintf(out, "base_path:  %s\n", settings["base_path"])
	fmt.Fprintf(out, "author:     %s\n", settings["author"])
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "server_url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid server URL: %s", value)
		}
		cfg.ServerURL = value
	case "base_path":
		if !validBasePath(value) {
			return fmt.Errorf("invalid base path %q (must start with /)", value)
		}
		cfg.BasePath = value
	case "author":
		cfg.Author = value
	default:
		return fmt.Errorf("unknown config key %q (want server_url, base_path or author)", key)
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", key)
	return nil
}
