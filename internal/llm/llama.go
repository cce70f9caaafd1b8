package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// LLaMAClient targets OpenAI-compatible completion endpoints, the common
// self-hosted fallback when the Gemini quota runs dry.
type LLaMAClient struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

func NewLLaMAClient(apiKey, model, apiURL string) *LLaMAClient {
	return &LLaMAClient{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *LLaMAClient) GenerateMenu(ctx context.Context, rawText string) (string, error) {
	if l.apiKey == "" || l.apiURL == "" {
		return "", errors.New("llama client not configured")
	}

	payload := map[string]any{
		"model":       l.model,
		"input":       BuildWeeklyMenuPrompt(rawText),
		"temperature": 0.1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+l.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.New("llama returned a non-json envelope")
	}

	// serving stacks disagree on the output field name
	if v, ok := parsed["output_text"].(string); ok && v != "" {
		return v, nil
	}
	if v, ok := parsed["generated_text"].(string); ok && v != "" {
		return v, nil
	}
	if gen, ok := parsed["generation"].(map[string]any); ok {
		if txt, ok := gen["text"].(string); ok && txt != "" {
			return txt, nil
		}
	}

	return "", errors.New("empty llama response")
}
