package prompt

// Tier is one of the six sections of the T6 Framework.
type Tier struct {
	// Code is the tier marker used in the prompt ("T1".."T6")
	Code string `json:"code"`

	// Name is the full tier name as written in the prompt
	Name string `json:"name"`

	// ShortName is the label shown on tier cards
	ShortName string `json:"short_name"`

	// Summary is the one-line card blurb
	Summary string `json:"summary"`

	// Guidance is the instruction text sent to the model for this tier
	Guidance string `json:"guidance"`
}

// Label returns the card heading, e.g. "T5: Ideas".
func (t Tier) Label() string {
	return t.Code + ": " + t.ShortName
}

// Line returns the prompt line for the tier.
func (t Tier) Line() string {
	return t.Code + ": " + t.Name + " - " + t.Guidance
}

var tiers = []Tier{
	{
		Code:      "T1",
		Name:      "Curiosity",
		ShortName: "Curiosity",
		Summary:   "Raw wonder and questions",
		Guidance:  "Begin with raw wonder and questions, exploring what pulls us into this topic",
	},
	{
		Code:      "T2",
		Name:      "Analogy",
		ShortName: "Analogy",
		Summary:   "Metaphors bridge understanding",
		Guidance:  "Use metaphors to bridge abstract to tangible, weaving in relevant data",
	},
	{
		Code:      "T3",
		Name:      "Insight",
		ShortName: "Insight",
		Summary:   "Patterns surface naturally",
		Guidance:  "Let patterns surface naturally, building on data's pulse",
	},
	{
		Code:      "T4",
		Name:      "Truth",
		ShortName: "Truth",
		Summary:   "Grounded in evidence",
		Guidance: "Ground in what stands solid in reality, backed by evidence. CRITICAL: Include specific data points, studies, numbers, or concrete evidence. " +
			"Don't just reference \"recent studies\"—cite actual findings, measurements, or verifiable facts that anchor the exploration. " +
			"This tier must provide tangible proof that stands up to reality's test.",
	},
	{
		Code:      "T5",
		Name:      "Groundbreaking Ideas",
		ShortName: "Ideas",
		Summary:   "Bold leaps emerge",
		Guidance: "Uncover bold leaps that emerge from the data. CRITICAL: This must present genuinely disruptive ideas that \"break ground on their own\"—not just restatements of T3/T4. " +
			"Push beyond comfortable implications to ideas that challenge fundamental assumptions. " +
			"What surprising, even uncomfortable conclusion emerges unbidden from the evidence? " +
			"This tier should make readers pause and reconsider.",
	},
	{
		Code:      "T6",
		Name:      "Paradigm Shifts",
		ShortName: "Paradigm Shifts",
		Summary:   "Fundamental reweavings",
		Guidance:  "Zoom out to fundamental reweavings that could redefine existence",
	},
}

// Tiers returns a copy of the tier catalog in order T1..T6.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
