package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/t6post/internal/clipboard"
	"github.com/Yates-Labs/t6post/internal/generation"
	"github.com/Yates-Labs/t6post/internal/tui"
)

var logFile string

var interactiveCmd = &cobra.Command{
	Use:     "interactive [topic]",
	Aliases: []string{"i"},
	Short:   "Generate T6 posts in an interactive terminal app",
	Long: `Open a terminal app with a topic input, the generated post, and the six tiers.

Keys:
  enter    generate a post for the current topic
  ctrl+y   copy the post to the clipboard
  ctrl+l   clear the post
  esc      quit

Logs are discarded unless --log-file is set, since they would draw over the app.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	a, err := setup(logOut)
	if err != nil {
		return err
	}

	ctrl, err := generation.NewController(a.model,
		generation.WithLogger(a.logger),
		generation.WithClipboard(clipboard.New()),
	)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		ctrl.SetTopic(args[0])
	}

	return tui.Run(cmd.Context(), ctrl)
}
