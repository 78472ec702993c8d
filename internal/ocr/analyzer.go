package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/greenstep-az/ecorewards-backend/internal/logger"
)

// Result holds the fields extracted from a receipt image. Nil pointers mean
// the model could not read that field.
type Result struct {
	VendorName      *string  `json:"vendorName"`
	Amount          *float64 `json:"amount"`
	Date            *string  `json:"date"`
	Confidence      float64  `json:"confidence"`
	IsPartnerVendor bool     `json:"isPartnerVendor"`
	RawVendorName   *string  `json:"rawVendorName"`
}

// Analyzer extracts vendor, amount and date from receipt photos through an
// OpenAI-compatible vision model.
type Analyzer struct {
	client *openai.Client
	model  string
}

func NewAnalyzer(apiKey, baseURL, model string) *Analyzer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Analyzer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Enabled reports whether an API key was configured. Handlers use this to
// return a clear error instead of a failed upstream call.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.client != nil
}

const systemPromptTemplate = `You are a receipt analysis assistant. Extract the following information from receipt images:
1. Vendor/Store name - Try to match with these partner vendors if possible: %s
2. Total amount (in AZN - Azerbaijani Manat)
3. Date of purchase (format: YYYY-MM-DD)

Respond ONLY with a valid JSON object in this exact format:
{
  "vendorName": "extracted vendor name or best match from partner list",
  "amount": 123.45,
  "date": "2024-01-15",
  "confidence": 0.85,
  "isPartnerVendor": true,
  "rawVendorName": "original vendor name from receipt"
}

If you cannot extract a field, use null for that field. The confidence should be between 0 and 1.`

// AnalyzeReceipt sends the image to the vision model together with the list
// of approved partner vendor names and parses the structured reply.
func (a *Analyzer) AnalyzeReceipt(ctx context.Context, imageURL string, partnerVendors []string) (*Result, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.1,
		MaxTokens:   500,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptTemplate, strings.Join(partnerVendors, ", ")),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Please analyze this receipt image and extract the vendor name, total amount, and date.",
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ocr: empty response")
	}

	content := resp.Choices[0].Message.Content
	result, err := parseResult(content)
	if err != nil {
		logger.Log.WithField("content", content).Warn("unparseable OCR reply")
		return nil, err
	}

	if result.RawVendorName == nil {
		result.RawVendorName = result.VendorName
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	} else if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result, nil
}

var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// parseResult tolerates markdown code fences and surrounding prose around
// the JSON object.
func parseResult(content string) (*Result, error) {
	raw := strings.TrimSpace(content)
	if m := codeFenceRe.FindStringSubmatch(raw); len(m) > 1 {
		raw = strings.TrimSpace(m[1])
	} else if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		raw = raw[start : end+1]
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("ocr: parse reply: %w", err)
	}
	return &result, nil
}
