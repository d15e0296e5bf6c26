package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/server"
)

var (
	serveAddr    string
	serveCatalog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo backend",
	Long: `Run the demo NFT customer-service backend.

Without GEMINI_API_KEY the bot answers from the collection catalog.
Configuration is read from the environment and from a .env file:
  NFTDESK_ADDR       listen address (default :5000)
  NFTDESK_CATALOG    YAML collection catalog
  GEMINI_API_KEY     enables Gemini replies
  GEMINI_MODEL       Gemini model (default gemini-2.5-flash)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides NFTDESK_ADDR)")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "YAML catalog file (overrides NFTDESK_CATALOG)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig loads the environment and applies flag overrides.
func serverConfig() *config.ServerConfig {
	cfg := config.LoadServer()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveCatalog != "" {
		cfg.CatalogPath = serveCatalog
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.InitWriter(os.Stderr)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := serverConfig()
	srv, err := server.NewFromConfig(ctx, cfg, version)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}

	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

