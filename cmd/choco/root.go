package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-choco-sql/internal/cli"
	"github.com/biyonik/go-choco-sql/internal/logging"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "choco",
	Short: "Fluent SELECT query composer",
	Long: `choco - Fluent SELECT query composer

choco builds SELECT statements with nested subqueries from command line flags,
prints the generated SQL or runs it against PostgreSQL, MySQL or SQLite.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		initLogging(cfg.Log)
		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupQuery   = "query"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover choco.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupQuery, Title: "Query:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupQuery
	queryCmd.GroupID = groupQuery
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(queryCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// initLogging applies log.level and log.format; -v and -q override the level.
func initLogging(lc cli.LogConfig) {
	level := logging.ParseLevel(lc.Level)
	switch {
	case quiet:
		level = logging.LevelError
	case verbose >= 2:
		level = logging.LevelDebug
	case verbose == 1:
		level = logging.LevelInfo
	}
	logging.InitLogger(level, logging.ParseFormat(lc.Format), os.Stderr)
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
