package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or false when unknown.
// OpenRouter IDs carry a vendor prefix ("openai/gpt-4o-mini"), which is
// stripped before the lookup.
func LookupCost(modelID string) (ModelCost, bool) {
	if c, ok := modelCosts[modelID]; ok {
		return c, true
	}
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		c, ok := modelCosts[modelID[i+1:]]
		return c, ok
	}
	return ModelCost{}, false
}

// modelCosts covers the models kotoba's friendly names resolve to and a
// few close siblings. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":          {1, 5},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},
	"claude-3-5-haiku-latest":   {0.8, 4},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gpt-4.1":                   {2, 8},
	"gpt-4.1-mini":              {0.4, 1.6},
	"gpt-4.1-nano":              {0.1, 0.4},
	"gpt-5-mini":                {0.25, 2},
	"gpt-5-nano":                {0.05, 0.4},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.0-flash-lite":     {0.075, 0.3},
	"gemini-2.5-flash":          {0.3, 2.5},
	"gemini-2.5-flash-lite":     {0.1, 0.4},
	"gemini-2.5-pro":            {1.25, 10},
}
