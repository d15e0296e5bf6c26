package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/app"
	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	apiURL                string
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "nftdesk",
	Short: "Terminal chat client for the NFT customer-service bot",
	Long: `nftdesk is a terminal client for the NFT customer-service bot.
It lists NFT collections, chats with the bot and simulates NFT transfers
against an HTTP backend. Run 'nftdesk serve' for a local demo backend.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&apiURL, "api", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default ~/.nftdesk/config.json)")
}

func initConfig() {
	logger.SetLevel(logLevel())
}

// logLevel maps --debug and --quiet to a log level. --quiet wins.
func logLevel() logger.LogLevel {
	if debugMode && !quietMode {
		return logger.LevelDebug
	}
	return logger.LevelInfo
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("nftdesk %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("nftdesk %s\n", version)
}

// loadClientConfig loads the config file and applies the --api override.
func loadClientConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if apiURL != "" {
		cfg.SetAPIURL(apiURL)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --api: %w", err)
		}
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.DefaultLogPath); err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}
	defer logger.Close()

	logger.WithComponent("cmd").Info("starting", "version", version, "api", cfg.GetAPIURL())

	client := api.New(cfg.GetAPIURL())
	m := app.New(cfg, client, app.WithVersion(version))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
