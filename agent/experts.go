package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/wacc"
	"google.golang.org/genai"
)

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of answering the user's questions
			about a reconciliation of their share holdings against their weighted average cost of capital (WACC).

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep context of your previous questions.

			Always check the figures with the Analyst before commenting on them. Quote amounts as they
			are given to you, never recompute them.
			Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for news about the
// listed companies.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader, aware of the listed companies, their sector and the latest news.
		Ask the Trader whenever you need recent or grounding information about a scrip.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading. Scrips are ticker symbols of listed companies.
			Use Google Search to ground your assertions and relate the latest news to the question.
			`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the report r.
func NewAnalyst(r *wacc.Report, currency, model string) *Expert {
	lib := ReportFunctions(r, currency)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They hold the reconciliation report: for each scrip the quantity held,
		the last traded and closing prices, the WACC rate, the cost of capital, the difference with the current
		value, and the totals of the portfolio.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
			You are the analyst of a reconciliation report dated %s. Amounts are in %s.
			Use the available tools to get the figures: totals, holdings, a single holding,
			the holdings without cost basis and the rows left out of the report.
			A holding without cost basis has a zero WACC rate, so its difference is its full value.
			`, r.On, currency)}}},
		},
		Library: NewLibrary(lib),
	}
}

// ReportFunctions returns the functions giving access to r.
func ReportFunctions(r *wacc.Report, currency string) []*Func {
	noArgs := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Totals",
				Description: "Totals returns the date, the currency and the totals of the report.",
				Parameters:  noArgs,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return respond(id, "Totals", map[string]any{
					"date":     r.On.String(),
					"currency": currency,
					"totals":   r.Totals,
				})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Holdings",
				Description: "Holdings lists every reconciled holding with all its columns, in the report order.",
				Parameters:  noArgs,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return respond(id, "Holdings", map[string]any{"holdings": r.Rows})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Holding",
				Description: "Holding returns all the columns of a single holding.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"scrip": {
							Type:        genai.TypeString,
							Description: "The scrip (ticker symbol) of the holding, case does not matter.",
						},
					},
					Required: []string{"scrip"},
				},
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				key := wacc.NormalizeKey(args["scrip"])
				for _, row := range r.Rows {
					if row.Key() == key {
						return respond(id, "Holding", map[string]any{"holding": row, "hasCostBasis": row.Matched()})
					}
				}
				return respond(id, "Holding", map[string]any{"error": fmt.Sprintf("no holding for scrip %q", key)})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Unmatched",
				Description: "Unmatched lists the scrips held without a cost basis.",
				Parameters:  noArgs,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return respond(id, "Unmatched", map[string]any{"scrips": r.Unmatched()})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Skipped",
				Description: "Skipped lists the holdings rows left out of the report, and why.",
				Parameters:  noArgs,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return respond(id, "Skipped", map[string]any{"skipped": r.Skipped})
			},
		},
	}
}

// respond builds a function response whose values are plain JSON values.
func respond(id, name string, v map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name}
	data, err := json.Marshal(v)
	if err == nil {
		err = json.Unmarshal(data, &fresp.Response)
	}
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
	}
	return fresp
}
