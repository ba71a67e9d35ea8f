// Package gemini implements the tenk.Generator capability on top of
// Google's Gemini models. The API key is read by the genai client itself
// from the GEMINI_API_KEY environment variable.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// Preamble is the system instruction framing every request.
const Preamble = "You are an AI assistant specializing in financial information retrieval and analysis."

// Client is a tenk.Generator backed by one Gemini model.
type Client struct {
	model  string
	client *genai.Client
}

// New creates a generator for the given model name; empty means
// DefaultModel.
func New(ctx context.Context, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}
	return &Client{model: model, client: client}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends the prompt and returns the model's text answer. With
// wantJSON the model is constrained to answer with a JSON document.
func (c *Client) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: Preamble}}},
	}
	if wantJSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidate in response from %s", c.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
