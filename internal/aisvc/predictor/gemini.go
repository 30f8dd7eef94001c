package predictor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiScore = 75.0

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// LineupPrompt describes every player and asks for a LINEUP/SCORE/RATIONALE answer.
func LineupPrompt(available []int, positions []string, stats map[int]PlayerStats, strategy string) string {
	var players strings.Builder
	for _, id := range available {
		st, ok := stats[id]
		if !ok {
			continue
		}
		fmt.Fprintf(&players, "Player %d: Performance=%.1f, Value=$%.0f, Consistency=%.2f, Trending=%s, Injury Risk=%.2f\n",
			id, st.RecentPerformance, st.MarketValue, st.Consistency, st.Trending, st.InjuryRisk)
	}

	return fmt.Sprintf(`You are a fantasy sports AI assistant. Analyze these players and suggest the optimal lineup.

Available Players:
%s
Required Positions: %s
Strategy: %s

Please provide:
1. Best player for each position (use player IDs)
2. Expected total score (0-100 scale)
3. Brief rationale (2-3 sentences)

Format your response as:
LINEUP: [list of player IDs in order of positions]
SCORE: [number]
RATIONALE: [your explanation]`, players.String(), strings.Join(positions, ", "), strategy)
}

var scoreNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseLineup reads a model answer. The lineup is empty when no LINEUP line
// yields player ids.
func ParseLineup(text string, positions []string) Result {
	res := Result{
		Positions:     map[string][]int{},
		ExpectedScore: defaultGeminiScore,
		Rationale:     "AI-optimized lineup based on performance metrics.",
	}

	if line, ok := lineAfter(text, "LINEUP:"); ok {
		var ids []int
		cleaned := strings.NewReplacer("[", "", "]", "").Replace(line)
		for _, f := range strings.Split(cleaned, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(f)); err == nil && id >= 0 {
				ids = append(ids, id)
			}
		}
		for i, pos := range positions {
			if i < len(ids) {
				res.Positions[pos] = []int{ids[i]}
			}
		}
	}

	if line, ok := lineAfter(text, "SCORE:"); ok {
		if m := scoreNumber.FindString(line); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				res.ExpectedScore = v
			}
		}
	}

	if i := strings.Index(text, "RATIONALE:"); i >= 0 {
		if r := strings.TrimSpace(text[i+len("RATIONALE:"):]); r != "" {
			res.Rationale = r
		}
	}

	return res
}

func lineAfter(text, marker string) (string, bool) {
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(marker):]
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return rest, true
}
