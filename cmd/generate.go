package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/t6post/internal/clipboard"
	"github.com/Yates-Labs/t6post/internal/export"
	"github.com/Yates-Labs/t6post/internal/generation"
	"github.com/Yates-Labs/t6post/internal/tui"
)

var (
	copyResult   bool
	exportFile   string
	exportFormat string
	rawOutput    bool
	outputWidth  int
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a T6 post about a topic",
	Long: `Generate one post about a topic using the T6 Framework.

The post walks through all six tiers, from a curious question to a paradigm
shift, and is printed as rendered markdown.

Examples:
  t6post generate "artificial intelligence"
  t6post generate climate change --copy
  t6post generate "human consciousness" --export post.html --format html
  t6post generate gravity --provider mock --raw`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&copyResult, "copy", false, "Copy the generated post to the clipboard")
	generateCmd.Flags().StringVar(&exportFile, "export", "", "Write the post to a file: --export <filename>")
	generateCmd.Flags().StringVar(&exportFormat, "format", "markdown", "Export format: text, markdown, json, html")
	generateCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the post without markdown rendering")
	generateCmd.Flags().IntVar(&outputWidth, "width", 80, "Wrap width for rendered output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	// Styling
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink
		topicColor   = lipgloss.Color("#8BE9FD") // Cyan
		mutedColor   = lipgloss.Color("#6272A4") // Muted purple
		errorColor   = lipgloss.Color("#FF5555") // Red
		successColor = lipgloss.Color("#50FA7B") // Green
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	topicStyle := lipgloss.NewStyle().
		Foreground(topicColor).
		Italic(true)

	contextStyle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(successColor)

	// Reject a bad export format before spending a request on it
	format, err := export.ParseFormat(exportFormat)
	if exportFile != "" && err != nil {
		return err
	}

	a, err := setup(os.Stderr)
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

	fmt.Println()
	fmt.Println(headerStyle.Render("Topic:"))
	fmt.Println(topicStyle.Render(topic))
	fmt.Println()

	if verbose {
		fmt.Println(contextStyle.Render(fmt.Sprintf("→ Generating with %s (%s)...", a.cfg.LLM.Provider, a.cfg.LLM.Model)))
	}

	text, err := ctrl.Generate(cmd.Context(), topic)
	if err != nil {
		msg := ctrl.State().ErrorMessage
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%s %s", errorStyle.Render("Error:"), msg)
	}

	fmt.Println(headerStyle.Render("Your T6 Post:"))
	if rawOutput {
		fmt.Println(text)
	} else {
		rendered, err := tui.RenderMarkdown(text, outputWidth)
		if err != nil {
			a.logger.Warn("markdown rendering failed", "error", err)
			rendered = text
		}
		fmt.Println(strings.TrimRight(rendered, "\n"))
	}
	fmt.Println()

	if copyResult {
		if err := ctrl.CopyResult(); err != nil {
			fmt.Println(errorStyle.Render("✗ Copy failed: ") + err.Error())
		} else {
			fmt.Println(successStyle.Render("✓ Copied to clipboard!"))
		}
	}

	if exportFile != "" {
		post := export.Post{
			Topic:       topic,
			Text:        text,
			Provider:    a.cfg.LLM.Provider,
			Model:       a.cfg.LLM.Model,
			GeneratedAt: time.Now().UTC(),
		}
		if err := handleExport(post, format, exportFile); err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Exported post to %s", exportFile)))
	}

	return nil
}

func handleExport(post export.Post, format export.Format, filename string) error {
	// Create output file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := export.WritePost(post, string(format), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
