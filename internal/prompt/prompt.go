// Package prompt holds the T6 Framework prompt template and the tier catalog
// it is built from. The template text is static content; Build only
// interpolates the topic.
package prompt

import (
	"fmt"
	"strings"
)

var principles = []string{
	"Release possession of outcomes (not self), embrace organic growth",
	"Use data as stepping stones that anchor AND propel—facts catalyze rather than confine",
	"Ethics emerges naturally from what sustains, tested by reality's weight",
	"This is a rhythm to ride, not a framework to wield",
	"Flow through tiers with philosophical surrender to what emerges",
}

var structureRequirements = []string{
	"Give T4 its own dedicated space with concrete evidence (specific numbers, studies, measurements)",
	"Give T5 its own dedicated space with a genuinely bold leap that feels risky or uncomfortable",
	"Don't rush through T4 and T5 to get to T6",
	"Make the flow natural but ensure each tier gets substantive treatment",
}

const formatInstructions = "Format the post as a cohesive exploration that flows through these tiers naturally. " +
	"Make it insightful, thought-provoking, and suitable for X (Twitter). " +
	"Aim for 4-6 paragraphs that give proper weight to T4 (evidence) and T5 (bold ideas) while maintaining engaging flow."

// Build returns the full generation prompt for topic. The topic is inserted
// as given; callers validate it.
func Build(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate a post about \"%s\" using the T6 Framework. ", topic))
	b.WriteString("The T6 Framework is a philosophical journey through six tiers:\n\n")

	for _, t := range tiers {
		b.WriteString(t.Line())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Key principles:\n")
	writeBullets(&b, principles)
	b.WriteString("\n")

	b.WriteString("STRUCTURE REQUIREMENTS:\n")
	writeBullets(&b, structureRequirements)
	b.WriteString("\n")

	b.WriteString(formatInstructions)

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}
