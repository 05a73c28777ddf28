package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/billdonner/obo-gen/internal/config"
	"github.com/billdonner/obo-gen/internal/generation"
)

const testAPIKey = "test-key"

var planetsRequest = generation.Request{Topic: "Planets", AgeRange: "4-6", Count: 2}

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey: testAPIKey,
		ModelName:    "gemini-2.0-flash",
		Timeout:      5 * time.Second,
		BaseURL:      baseURL,
		Temperature:  0.7,
	}
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *GeminiGenerator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGeminiGenerator(context.Background(), nil, testConfig(srv.URL))
	require.NoError(t, err)
	return g
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	assert.NoError(t, err)
}

func TestNewGeminiGenerator_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing api key", func(t *testing.T) {
		cfg := testConfig("")
		cfg.GeminiAPIKey = "  "
		_, err := NewGeminiGenerator(ctx, nil, cfg)
		assert.ErrorIs(t, err, generation.ErrMissingCredential)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := testConfig("")
		cfg.ModelName = ""
		_, err := NewGeminiGenerator(ctx, nil, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Timeout = 0
		_, err := NewGeminiGenerator(ctx, nil, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("valid", func(t *testing.T) {
		g, err := NewGeminiGenerator(ctx, nil, testConfig(""))
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", g.model)
		assert.Equal(t, float32(0.7), g.temperature)
	})
}

func TestGenerateDeck_Success(t *testing.T) {
	deckText := "Title: Planets\nQ: What planet do we live on? | A: Earth\nQ: Which planet has rings? | A: Saturn\n"

	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.Equal(t, testAPIKey, r.Header.Get("x-goog-api-key"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body.Contents)
		require.NotEmpty(t, body.Contents[0].Parts)
		assert.Contains(t, body.Contents[0].Parts[0].Text, `about "Planets"`)
		assert.Contains(t, body.Contents[0].Parts[0].Text, "exactly 2 cards")

		resp, err := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{
					"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": deckText}}},
					"finishReason": "STOP",
				},
			},
		})
		require.NoError(t, err)
		writeJSON(t, w, http.StatusOK, string(resp))
	})

	text, err := g.GenerateDeck(context.Background(), planetsRequest)
	require.NoError(t, err)
	assert.Equal(t, deckText, text)
}

func TestGenerateDeck_ProviderStatus(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	})

	_, err := g.GenerateDeck(context.Background(), planetsRequest)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderStatus)

	var perr *generation.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	assert.Equal(t, "Resource has been exhausted", perr.Message)
}

func TestGenerateDeck_PlainTextErrorBody(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := g.GenerateDeck(context.Background(), planetsRequest)

	var perr *generation.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, "upstream unavailable", perr.Message)
}

func TestGenerateDeck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	g, err := NewGeminiGenerator(context.Background(), nil, cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = g.GenerateDeck(context.Background(), planetsRequest)
	assert.ErrorIs(t, err, generation.ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestGenerateDeck_InvalidRequestMakesNoCall(t *testing.T) {
	called := false
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := g.GenerateDeck(context.Background(), generation.Request{Topic: "Planets", AgeRange: "4-6", Count: 0})
	assert.ErrorIs(t, err, generation.ErrInvalidRequest)
	assert.False(t, called)
}

func TestGenerateDeck_BlockedAndEmptyResponses(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "no candidates",
			body:    `{"candidates":[]}`,
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "empty text",
			body:    `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"STOP"}]}`,
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "safety finish",
			body:    `{"candidates":[{"finishReason":"SAFETY"}]}`,
			wantErr: generation.ErrContentBlocked,
		},
		{
			name:    "prompt blocked",
			body:    `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantErr: generation.ErrContentBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, tt.body)
			})

			_, err := g.GenerateDeck(context.Background(), planetsRequest)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResponseText_SkipsThoughts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking about planets", Thought: true},
				{Text: "Title: Planets\n"},
				{Text: "Q: Red planet? | A: Mars\n"},
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Title: Planets\nQ: Red planet? | A: Mars\n", text)
}

func TestMapError(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		err := mapError(genai.APIError{Code: 503, Message: "overloaded"})
		var perr *generation.ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 503, perr.StatusCode)
	})

	t.Run("deadline", func(t *testing.T) {
		assert.ErrorIs(t, mapError(context.DeadlineExceeded), generation.ErrTimeout)
	})

	t.Run("other", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := mapError(cause)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, generation.ErrProviderStatus)
	})
}
