package config

import (
	"os"
	"strings"
	"sync"

	apperrors "tradcv/internal/errors"
)

// DefaultArchetypeMatrix maps target industries to the writing archetype the
// tailoring prompt should adopt. It is the built-in fallback when no external
// matrix file is configured.
const DefaultArchetypeMatrix = `
Big Tech / Enterprise (PM Roles):
DNA: User empathy, data-driven decisions, cross-functional leadership, shipping products at scale. Keywords: Roadmap, User Stories, A/B Testing, KPIs, Stakeholders, GTM, Scale. Archetype: "Mini-CEO."
Venture-Backed Startups:
DNA: Ownership, 0-to-1 execution, speed, scrappiness. Keywords: Launch, Iterate, Growth, MVP, User Feedback, Ambiguity, Hustle. Archetype: "Founder-Builder."
Specialized AI Research & Development:
DNA: Technical depth, scientific rigor, novel contributions, pushing state-of-the-art. Keywords: Benchmark, Model, Algorithm, Prototype, Paper, Experiment, SOTA. Archetype: "Pioneer."
Quantitative, HFT, & Proprietary Trading:
DNA: First-principles thinking, quantitative rigor, probabilistic mindset, finding "edge" or "alpha." Keywords: Model, Signal, Probability, Statistics, Alpha, Latency, Python, C++. Archetype: "Intellectual Killer."
Hedge Funds & Investment Management:
DNA: Analytical depth, thesis-driven research, data analysis, generating returns. Keywords: Thesis, Analysis, Valuation, Model, Risk, Portfolio, SQL. Archetype: "Rigorous Thinker."
Investment Banking:
DNA: Extreme work ethic, financial modeling, attention to detail, executing high-stakes transactions. Keywords: DCF, LBO, Valuation, Pitch Deck, M&A, Excel, Transaction. Archetype: "Grinder."
Elite Management & Strategy Consulting:
DNA: Structured problem-solving, hypothesis-led thinking, client-facing communication, driving business impact. Keywords: Framework, Hypothesis, Impact, Case, Deck, Client, Recommendation, MECE. Archetype: "Intellectual Athlete."
Turnaround & Restructuring Consulting:
DNA: Comfort with distress, P&L analysis, operational rigor, making tough decisions under pressure. Keywords: Turnaround, Restructuring, Profitability, Liquidity, Operations. Archetype: "Corporate Surgeon."
`

var (
	matrixMu   sync.RWMutex
	matrixText = DefaultArchetypeMatrix
)

// ArchetypeMatrix returns the currently active archetype matrix text. Safe for
// concurrent use with the file watcher.
func ArchetypeMatrix() string {
	matrixMu.RLock()
	defer matrixMu.RUnlock()
	return matrixText
}

func setArchetypeMatrix(text string) {
	matrixMu.Lock()
	defer matrixMu.Unlock()
	matrixText = text
}

// loadMatrix reads the archetype matrix from the configured file if one is
// set, otherwise keeps the built-in default.
func (c *Config) loadMatrix() error {
	if c.AI.Matrix.File == "" {
		setArchetypeMatrix(DefaultArchetypeMatrix)
		return nil
	}

	text, err := readMatrixFile(c.AI.Matrix.File)
	if err != nil {
		return err
	}
	setArchetypeMatrix(text)
	return nil
}

func readMatrixFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.NewConfigError(
			apperrors.ErrCodeInvalidConfig,
			"failed to read archetype matrix file",
			err,
		).WithContext("file", path)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewConfigError(
			apperrors.ErrCodeInvalidConfig,
			"archetype matrix file is empty",
			nil,
		).WithContext("file", path)
	}
	return text, nil
}
