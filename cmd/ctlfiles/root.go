// Root command for the ctlfiles CLI.
package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/internal/paths"
	"github.com/mesh-intelligence/ctlfiles/pkg/ctlfiles"
)

// Global flag values.
var (
	flagConfigDir    string
	flagRootDir      string
	flagTemplate     string
	flagDB           string
	flagControlTable string
	flagLogLevel     string
	flagVerbose      bool
	flagQuiet        bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configRootDir      string
	configTemplatePath string
	configDBPath       string
	configControlTable string
)

// logger is the process-wide logger, built after flags and config resolve.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:     "ctlfiles",
	Short:   "ctlfiles keeps pipeline control files in sync with a template",
	Version: ctlfiles.Version,
	Long: `ctlfiles maintains a corpus of per-entity JSON control files that
parameterize a data-pipeline control table. It keeps each file's key set
synchronized with a template document, propagates filtered bulk edits, and
commits the corpus to a managed control table.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configRootDir = cfg.GetString(cfgKeyRootDir)
		configTemplatePath = cfg.GetString(cfgKeyTemplatePath)
		configDBPath = cfg.GetString(cfgKeyDBPath)
		configControlTable = cfg.GetString(cfgKeyControlTable)

		logger = newLogger()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagRootDir, "root-dir", "", "corpus root containing the json_<system> directories (default: $(CWD)/controls)")
	rootCmd.PersistentFlags().StringVar(&flagTemplate, "template", "", "template document path (default: <root>/template.json)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "control database path (default: <root>/control.db)")
	rootCmd.PersistentFlags().StringVar(&flagControlTable, "control-table", "", "control table name (default: pipeline_control)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "shortcut for --log-level debug")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "shortcut for --log-level warn")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(commitCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > CTLFILES_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveRootDir returns the corpus root following the precedence:
// --root-dir flag > config.yaml root_dir > CTLFILES_ROOT_DIR env > default.
func resolveRootDir() (string, error) {
	return paths.ResolveRootDir(flagRootDir, configRootDir)
}

// resolveTemplatePath returns the template document path following the
// precedence: --template flag > config.yaml template_path > <root>/template.json.
func resolveTemplatePath(rootDir string) (string, error) {
	return paths.ResolveTemplatePath(flagTemplate, configTemplatePath, rootDir)
}
