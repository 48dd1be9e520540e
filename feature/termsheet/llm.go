package termsheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"termsheet-reconciler/core/reconcile"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// maxPromptChars bounds how much document text goes into the prompt.
const maxPromptChars = 12000

const systemPrompt = "You are a financial document analyst specializing in bond term sheets. " +
	"Extract information accurately and return valid JSON only. " +
	"Be flexible in recognizing field names and their synonyms."

const promptTemplate = `You are a financial document analyst. Extract key information from this bond/debt term sheet.

Document: %s

Extract the following fields and return them as a FLAT JSON object (not nested):

- isin: ISIN code (e.g., NO0010894330, INE008A08U84)
- issuer: Name of the issuing entity/company/bank
- issue_amount: Total issuance size (number only)
- face_value: Nominal/face value per bond unit (number only)
- notional_amount: Total notional amount (if specified, otherwise null)
- coupon_rate: Interest rate as decimal number (e.g., 9.25 for 9.25%%)
- currency: Currency code (USD, INR, EUR, etc.)
- issue_date: Issue date in YYYY-MM-DD format
- maturity_date: Maturity date in YYYY-MM-DD format (null for perpetual)
- settlement_date: Settlement date in YYYY-MM-DD format
- payment_frequency: Interest payment frequency (e.g., "Semi-annual")
- day_count_convention: Day count method (e.g., "30/360")
- security_type: Security status (e.g., "Unsecured")
- seniority: Ranking (e.g., "Senior")
- tenor: Bond tenor/term (e.g., "5 years")

IMPORTANT:
1. Return a FLAT JSON object with these exact field names
2. Do NOT nest the fields under category headers
3. Use null for missing values
4. Extract only numbers for amounts and rates (no currency symbols or %%)

Document content:
%s`

// Extractor turns raw document text into a structured term sheet through an
// LLM. It is stateless, one Extractor serves any number of documents.
type Extractor struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewExtractor creates an extractor. The client may come from
// openai.NewClient or a test double via openai.NewClientWithConfig.
func NewExtractor(client *openai.Client, model string, maxTokens int, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Extract sends the document text to the LLM and parses the response into a
// term sheet. Transient API failures are retried with backoff, the caller's
// context bounds the whole operation.
func (e *Extractor) Extract(ctx context.Context, text, filename string) (*reconcile.TermSheet, error) {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	prompt := fmt.Sprintf(promptTemplate, filename, text)

	e.logger.Info("Sending document text for extraction",
		zap.String("file", filename),
		zap.Int("chars", len(text)),
	)

	const maxRetries = 3
	var resp openai.ChatCompletionResponse
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err = e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.0,
			MaxTokens:   e.maxTokens,
		})
		if err == nil && len(resp.Choices) > 0 {
			break
		}

		e.logger.Warn("Extraction attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < maxRetries {
			backoff := time.Duration(attempt*3)*time.Second + time.Duration(rand.Intn(3))*time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extraction failed after %d attempts: %w", maxRetries, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("extraction returned no choices")
	}

	ts, err := parseExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return ts, nil
}

// parseExtraction turns the raw model output into a term sheet. Code fences
// are stripped and nested category structures are flattened, models
// occasionally group fields under headers despite the prompt.
func parseExtraction(raw string) (*reconcile.TermSheet, error) {
	cleaned := stripCodeFence(raw)

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, err
	}

	if isNested(fields) {
		fields = flatten(fields)
	}
	coerceNumbers(fields)

	// Round-trip through JSON applies the canonical field tags.
	normalized, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	var ts reconcile.TermSheet
	if err := json.Unmarshal(normalized, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// isNested reports whether the model grouped fields under category headers.
func isNested(fields map[string]any) bool {
	for _, v := range fields {
		if _, ok := v.(map[string]any); ok {
			return true
		}
	}
	return false
}

func flatten(fields map[string]any) map[string]any {
	flat := make(map[string]any, len(fields))
	for key, value := range fields {
		if nested, ok := value.(map[string]any); ok {
			for k, v := range nested {
				flat[k] = v
			}
			continue
		}
		flat[key] = value
	}
	return flat
}

// coerceNumbers fixes numeric fields the model quoted as strings.
func coerceNumbers(fields map[string]any) {
	for _, key := range []string{
		reconcile.FieldIssueAmount,
		reconcile.FieldFaceValue,
		reconcile.FieldNotionalAmount,
		reconcile.FieldCouponRate,
	} {
		if s, ok := fields[key].(string); ok {
			s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				fields[key] = f
			} else {
				delete(fields, key)
			}
		}
	}
}
