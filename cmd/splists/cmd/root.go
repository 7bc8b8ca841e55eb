// Package cmd implements the splists CLI commands.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"splists/api"
	"splists/logging"
	"splists/spauth"
)

var rootCmd = &cobra.Command{
	Use:   "splists",
	Short: "Manage SharePoint lists from the terminal",
	Long: "splists is a command-line client for the SharePoint Lists REST API.\n" +
		"It creates, inspects, updates, and recycles lists, runs CAML queries,\n" +
		"and tracks list changes between runs.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnvironment)

	rootCmd.AddCommand(listsCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(ensureCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(recycleCmd())
	rootCmd.AddCommand(reserveIDCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(changesCmd())
}

func initEnvironment() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded environment from .env file")
	}
	logging.SetDefault(logging.NewLogger(logging.FromEnv()))
}

// newSP builds an authenticated root binding from the environment.
func newSP() (*api.SP, error) {
	cfg, err := spauth.FromEnv()
	if err != nil {
		return nil, err
	}
	client, err := spauth.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}
	return api.NewSP(client, cfg.SiteURL), nil
}

// printJSON pretty-prints a JSON payload to stdout.
func printJSON(data []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// Not JSON (e.g. a raw XML change log); print verbatim
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(out.String())
	return nil
}

// printValue JSON-encodes any value to stdout.
func printValue(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
