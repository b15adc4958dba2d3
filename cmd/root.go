package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/t6post/internal/config"
	"github.com/Yates-Labs/t6post/internal/llm"
	"github.com/Yates-Labs/t6post/internal/logging"
)

var (
	configPath   string
	providerName string
	modelName    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "t6post",
	Short: "T6post - T6 Framework post generator",
	Long: `T6post generates social posts that move through the six tiers of the T6 Framework:
curiosity, analogy, insight, truth, ideas, and paradigm shifts.

It calls a hosted language model once per post and can run as a one-shot
command, an interactive terminal app, or a small web server.

Configuration is read from t6post.yaml (or --config), T6POST_* environment
variables, and a .env file in the working directory.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "LLM provider: anthropic, openai, mock")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name passed to the provider")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	model  llm.LLM
}

// setup loads configuration and builds the logger and LLM client. Logs go
// to logOut.
func setup(logOut io.Writer) (*app, error) {
	opts := []config.Option{
		config.WithProvider(providerName),
		config.WithModel(modelName),
	}
	if verbose {
		opts = append(opts, config.WithLogLevel("debug"))
	}

	cfg, err := config.Load(configPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)

	model, err := llm.New(cfg.LLMSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if !cfg.HasCredentials() && cfg.LLM.Provider != llm.ProviderMock {
		logger.Warn("no API key configured", "provider", cfg.LLM.Provider, "env", cfg.LLM.APIKeyEnv)
	}

	logger.Debug("configuration loaded",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"max_tokens", cfg.LLM.MaxTokens,
	)

	return &app{cfg: cfg, logger: logger, model: model}, nil
}
