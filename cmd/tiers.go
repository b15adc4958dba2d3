package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/t6post/internal/prompt"
)

var (
	showGuidance bool
	promptTopic  string
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the six tiers of the T6 Framework",
	Long: `List the six tiers every generated post moves through.

Examples:
  t6post tiers
  t6post tiers --guidance
  t6post tiers --prompt "artificial intelligence"`,
	Args: cobra.NoArgs,
	RunE: runTiers,
}

func init() {
	rootCmd.AddCommand(tiersCmd)
	tiersCmd.Flags().BoolVar(&showGuidance, "guidance", false, "Show the prompt guidance for each tier instead of the summary")
	tiersCmd.Flags().StringVar(&promptTopic, "prompt", "", "Print the full prompt that would be sent for a topic")
}

func runTiers(cmd *cobra.Command, args []string) error {
	if promptTopic != "" {
		fmt.Println(prompt.Build(promptTopic))
		return nil
	}
	return outputTable(prompt.Tiers(), showGuidance)
}

func outputTable(tiers []prompt.Tier, guidance bool) error {
	// LipGloss signature purple/pink palette
	var (
		// Colors
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		codeColor    = lipgloss.Color("#FF79C6") // Pink
		nameColor    = lipgloss.Color("#BD93F9") // Purple
		textColor    = lipgloss.Color("#E9E9F4") // Light purple/white
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	)

	// Column widths
	const (
		codeWidth = 6
		nameWidth = 18
		textWidth = 64
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	lastHeader := "SUMMARY"
	if guidance {
		lastHeader = "GUIDANCE"
	}
	headers := []string{
		headerStyle.Width(codeWidth).Render("TIER"),
		headerStyle.Width(nameWidth).Render("NAME"),
		headerStyle.Width(textWidth).Render(lastHeader),
	}
	fmt.Println(strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", codeWidth),
		strings.Repeat("─", nameWidth),
		strings.Repeat("─", textWidth),
	}
	fmt.Println(borderStyle.Render(strings.Join(separatorParts, "┼")))

	codeStyle := lipgloss.NewStyle().
		Foreground(codeColor).
		Bold(true).
		Padding(0, 1).
		Width(codeWidth)

	nameStyle := lipgloss.NewStyle().
		Foreground(nameColor).
		Padding(0, 1).
		Width(nameWidth)

	textStyle := lipgloss.NewStyle().
		Foreground(textColor).
		Padding(0, 1).
		Width(textWidth)

	for _, t := range tiers {
		text := t.Summary
		if guidance {
			text = t.Guidance
		}
		// Wrapped cells span several lines, so join them side by side
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			codeStyle.Render(t.Code),
			borderStyle.Render("│"),
			nameStyle.Render(t.Name),
			borderStyle.Render("│"),
			textStyle.Render(text),
		)
		fmt.Println(row)
	}

	fmt.Println()
	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)
	fmt.Println(summaryStyle.Render(fmt.Sprintf("Total: %d tiers, from %s to %s",
		len(tiers), tiers[0].Name, tiers[len(tiers)-1].Name)))

	return nil
}
