package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/financeflow/internal"
)

const defaultTimeout = 30 * time.Second

// Client talks to an Anthropic-style messages endpoint. Prompts demand
// JSON-only answers so responses decode straight into the reply types.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func NewClient(cfg internal.AssistantConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant API returned status %d: %s", resp.StatusCode, string(body))
	}

	var msgResp messageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("empty assistant response")
	}

	return strings.TrimSpace(msgResp.Content[0].Text), nil
}

const standardizeSystemPrompt = `You standardize personal-finance category names.
Given a JSON object {"categories":[{"id","name"}]}, return a JSON object
{"standardizedCategories":[{"id","name"}]} with the same ids and concise,
title-cased names. Return ONLY the JSON object, no other text.`

// StandardizeCategoryNames asks the model for cleaner names for the
// given categories. The reply must cover exactly the input id set; any
// drift is rejected.
func (c *Client) StandardizeCategoryNames(ctx context.Context, req StandardizeRequest) (StandardizeReply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return StandardizeReply{}, internal.NewInternalError("failed to encode assistant request", err)
	}

	text, err := c.complete(ctx, standardizeSystemPrompt, string(payload))
	if err != nil {
		return StandardizeReply{}, internal.NewExternalError("assistant request failed", internal.ErrCodeAssistantFailed)
	}

	var reply StandardizeReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return StandardizeReply{}, internal.NewExternalError("assistant returned malformed reply", internal.ErrCodeAssistantFailed)
	}

	if !sameIDSet(req.Categories, reply.StandardizedCategories) {
		return StandardizeReply{}, internal.NewExternalError("assistant reply changed the category id set", internal.ErrCodeAssistantFailed)
	}
	return reply, nil
}

const summarizeSystemPrompt = `You are a personal-finance analyst. Given a JSON
object {"expenses","categories","earnings"}, return a JSON object
{"analysis":"..."} containing one short, concrete observation about the
spending. Return ONLY the JSON object, no other text.`

// SummarizeSpending asks the model for one free-text observation about
// the current spending data.
func (c *Client) SummarizeSpending(ctx context.Context, req SummarizeRequest) (SummarizeReply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return SummarizeReply{}, internal.NewInternalError("failed to encode assistant request", err)
	}

	text, err := c.complete(ctx, summarizeSystemPrompt, string(payload))
	if err != nil {
		return SummarizeReply{}, internal.NewExternalError("assistant request failed", internal.ErrCodeAssistantFailed)
	}

	var reply SummarizeReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil || reply.Analysis == "" {
		return SummarizeReply{}, internal.NewExternalError("assistant returned malformed reply", internal.ErrCodeAssistantFailed)
	}
	return reply, nil
}

func sameIDSet(in []CategoryName, out []CategoryName) bool {
	if len(in) != len(out) {
		return false
	}
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		seen[c.ID] = true
	}
	for _, c := range out {
		if !seen[c.ID] {
			return false
		}
		delete(seen, c.ID)
	}
	return len(seen) == 0
}
