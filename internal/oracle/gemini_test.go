package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sseol-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiOracle_Invoke(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"placements\": "}, {"text": "[]}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 800, "candidatesTokenCount": 40, "totalTokenCount": 840}
		}`))
	}))
	defer srv.Close()

	o, err := NewGeminiOracle(context.Background(), Options{
		APIKey:      "test-key",
		Model:       "gemini-2.5-flash",
		BaseURL:     srv.URL,
		Temperature: 0.2,
		Pricing:     DefaultPricing(),
	})
	require.NoError(t, err)

	res, err := o.Invoke(context.Background(), Request{SystemInstruction: "sys", Prompt: "place", MaxOutputTokens: 3000})
	require.NoError(t, err)

	assert.Equal(t, `{"placements": []}`, res.Text)
	assert.Equal(t, "STOP", res.FinishReason)
	assert.Equal(t, 800, res.InputTokens)
	assert.Equal(t, 40, res.OutputTokens)
	assert.Equal(t, 840, res.TotalTokens)
	assert.Greater(t, res.CostUSD.TotalUSD, 0.0)

	genCfg, _ := captured["generationConfig"].(map[string]interface{})
	require.NotNil(t, genCfg)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.EqualValues(t, 3000, genCfg["maxOutputTokens"])
	assert.NotNil(t, captured["systemInstruction"])
}

func TestGeminiOracle_ErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	o, err := NewGeminiOracle(context.Background(), Options{APIKey: "bad", Model: "gemini-2.5-flash", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = o.Invoke(context.Background(), Request{SystemInstruction: "sys", Prompt: "p", MaxOutputTokens: 100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOracleUnavailable))
}
