package cli

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/branding"
	"github.com/elemdex-labs/elemdex/internal/catalog"
	"github.com/elemdex-labs/elemdex/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` catalogs the agent elements (skills, commands, agents) installed
across the global, project, and local scopes, and keeps a persistent
manifest of them for fast listing and search.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var (
	managerOnce sync.Once
	sharedMgr   *catalog.Manager
)

// manager returns the process-wide catalog manager, created on first use
// so that configuration is loaded before the cache TTL is read.
func manager() *catalog.Manager {
	managerOnce.Do(func() {
		sharedMgr = catalog.New()
	})
	return sharedMgr
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
