package cli

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"semtrack"
	"semtrack/internal/docstore"
	"semtrack/internal/logger"
	semver "semtrack/pkg/semtrack"
)

// Global configuration variables
var (
	configFile  string
	dataDir     string
	databaseURL string
	backendName string
	debug       bool
	verbose     bool
	cfg         *Config
)

var validate = validator.New()

// openStore builds the document store for the active configuration.
// Command tests swap this out for an in-memory store.
var openStore = func() (*docstore.Store, error) {
	return semtrack.Open(cfg.Storage.Backend, storageTarget(cfg))
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "semtrack",
		Short: "semtrack - personal semester task organizer",
		Long: `semtrack keeps your semesters, subjects and tasks in one small
local document.

Everything lives on this device: a semester holds subjects, a subject
holds a color tag and an ordered task list. Commands mirror the three
screens of the workflow:
- semester: the semester overview
- subject:  subjects within one semester
- task:     tasks within one subject`,
		Version: semver.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				logger.SetLevel(logger.LevelDebug)
			case debug:
				logger.SetLevel(logger.LevelInfo)
			}

			loaded, err := LoadConfig(configFile)
			if err != nil {
				logger.Config().Warn("failed to load config file: %v", err)
			}
			if loaded != nil {
				cfg = loaded
			} else {
				cfg = DefaultConfig()
			}
			ApplyEnv(cfg)

			if backendName != "" {
				cfg.Storage.Backend = backendName
			}
			if dataDir != "" {
				cfg.Storage.Dir = dataDir
			}
			if databaseURL != "" {
				cfg.Storage.URL = databaseURL
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: semtrack.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "storage backend (file, postgres, memory)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for the file backend")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database connection URL for the postgres backend")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(semesterCmd)
	rootCmd.AddCommand(subjectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
