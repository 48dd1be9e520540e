package termsheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseExtraction(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		raw := `{"isin": "NO0010894330", "coupon_rate": 9.25, "maturity_date": null}`

		ts, err := parseExtraction(raw)
		require.NoError(t, err)

		require.NotNil(t, ts.ISIN)
		assert.Equal(t, "NO0010894330", *ts.ISIN)
		require.NotNil(t, ts.CouponRate)
		assert.Equal(t, 9.25, *ts.CouponRate)
		assert.Nil(t, ts.MaturityDate)
	})

	t.Run("CodeFenced", func(t *testing.T) {
		raw := "```json\n{\"isin\": \"INE008A08U84\"}\n```"

		ts, err := parseExtraction(raw)
		require.NoError(t, err)
		require.NotNil(t, ts.ISIN)
		assert.Equal(t, "INE008A08U84", *ts.ISIN)
	})

	t.Run("BareFence", func(t *testing.T) {
		raw := "```\n{\"currency\": \"INR\"}\n```"

		ts, err := parseExtraction(raw)
		require.NoError(t, err)
		require.NotNil(t, ts.Currency)
		assert.Equal(t, "INR", *ts.Currency)
	})

	t.Run("NestedCategoriesFlattened", func(t *testing.T) {
		raw := `{
			"IDENTIFIERS": {"isin": "NO0010894330", "issuer": "Genel Energy"},
			"FINANCIAL TERMS": {"coupon_rate": 9.25}
		}`

		ts, err := parseExtraction(raw)
		require.NoError(t, err)

		require.NotNil(t, ts.ISIN)
		assert.Equal(t, "NO0010894330", *ts.ISIN)
		require.NotNil(t, ts.CouponRate)
		assert.Equal(t, 9.25, *ts.CouponRate)
	})

	t.Run("QuotedNumbersCoerced", func(t *testing.T) {
		raw := `{"coupon_rate": "10.75", "face_value": "1,000,000"}`

		ts, err := parseExtraction(raw)
		require.NoError(t, err)

		require.NotNil(t, ts.CouponRate)
		assert.Equal(t, 10.75, *ts.CouponRate)
		require.NotNil(t, ts.FaceValue)
		assert.Equal(t, 1000000.0, *ts.FaceValue)
	})

	t.Run("UnparseableNumberDropped", func(t *testing.T) {
		raw := `{"coupon_rate": "ten percent", "isin": "NO0010894330"}`

		ts, err := parseExtraction(raw)
		require.NoError(t, err)

		assert.Nil(t, ts.CouponRate)
		require.NotNil(t, ts.ISIN)
	})

	t.Run("NotJSON", func(t *testing.T) {
		_, err := parseExtraction("I could not find any terms in this document.")
		assert.Error(t, err)
	})
}

func TestExtract(t *testing.T) {
	// Fake OpenAI endpoint returning a fenced flat object.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Content: "```json\n{\"isin\": \"NO0010894330\", \"coupon_rate\": 9.25}\n```",
				},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	client := openai.NewClientWithConfig(cfg)

	extractor := NewExtractor(client, "gpt-4o", 1500, zap.NewNop())
	ts, err := extractor.Extract(context.Background(), "Coupon Rate: 9.25% p.a.", "test.pdf")
	require.NoError(t, err)

	require.NotNil(t, ts.ISIN)
	assert.Equal(t, "NO0010894330", *ts.ISIN)
	require.NotNil(t, ts.CouponRate)
	assert.Equal(t, 9.25, *ts.CouponRate)
}
