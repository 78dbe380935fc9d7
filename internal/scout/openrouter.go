package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 20

// OpenRouter scouts prospects through an OpenAI-compatible chat completions API.
type OpenRouter struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	log            *zap.Logger
}

func NewOpenRouter(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, log *zap.Logger) *OpenRouter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenRouter{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		log:            log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Scout tries the primary model, then each fallback in order.
func (c *OpenRouter) Scout(ctx context.Context) (Report, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		rep, err := c.scoutWithModel(ctx, model)
		if err == nil {
			return rep, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if len(models) > 1 {
			c.log.Warn("model failed, trying next", zap.String("model", model), zap.Error(err))
		}
	}
	return Report{}, lastErr
}

func (c *OpenRouter) scoutWithModel(ctx context.Context, model string) (Report, error) {
	content, err := c.call(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	var rep Report
	if err := decodeReport(content, &rep); err != nil {
		c.log.Warn("scout returned invalid JSON, retrying", zap.String("model", model), zap.Error(err))
		content, err = c.call(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if err := decodeReport(content, &rep); err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
	}
	return rep, nil
}

func decodeReport(content string, rep *Report) error {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	if err := json.Unmarshal([]byte(content), rep); err != nil {
		return err
	}
	if rep.Name == "" || rep.Rating <= 0 {
		return fmt.Errorf("missing name or rating")
	}
	return nil
}

func (c *OpenRouter) call(ctx context.Context, model, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const systemPrompt = `You are a basketball talent scout for a card game.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "name": "<fictional player name>",
  "team": "<fictional or college team>",
  "position": "<one of PG, SG, SF, PF, C>",
  "lore": "<one or two sentences on where they were discovered>",
  "rating": <overall rating between 80 and 99>,
  "offense": <offense stat 0-99>,
  "defense": <defense stat 0-99>
}`

const userPrompt = `Create a unique, fictional basketball prospect.
Do NOT use real NBA player names. Create a cool sounding fictional name.
Invent a fictional backstory about where they were discovered (e.g. 'Streetball legend from Rucker Park', 'Euroleague prodigy').
The player should have high potential.`

func retryPrompt(bad string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching the schema (no markdown, no code fences).`, bad)
}
