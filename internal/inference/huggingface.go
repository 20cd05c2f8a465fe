// Package inference calls hosted models on the Hugging Face Inference API.
// It provides the summarization and question-answering collaborators used
// when llm.provider is "huggingface".
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the hosted Inference API base URL
const DefaultEndpoint = "https://api-inference.huggingface.co/models"

// Default models
const (
	DefaultSummarizationModel = "facebook/bart-large-cnn"
	DefaultQAModel            = "distilbert-base-cased-distilled-squad"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 4 << 10

// Options configures a Client
type Options struct {
	Endpoint           string
	APIToken           string
	SummarizationModel string
	QAModel            string
	HTTPClient         *http.Client
}

// Client is a Hugging Face Inference API client
type Client struct {
	endpoint           string
	apiToken           string
	summarizationModel string
	qaModel            string
	httpClient         *http.Client
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Model      string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("huggingface %s returned %d: %s", e.Model, e.StatusCode, e.Message)
}

// NewClient creates a client, filling unset options with defaults
func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:           strings.TrimRight(opts.Endpoint, "/"),
		apiToken:           opts.APIToken,
		summarizationModel: opts.SummarizationModel,
		qaModel:            opts.QAModel,
		httpClient:         opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.summarizationModel == "" {
		c.summarizationModel = DefaultSummarizationModel
	}
	if c.qaModel == "" {
		c.qaModel = DefaultQAModel
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return c
}

type summarizationRequest struct {
	Inputs     string                  `json:"inputs"`
	Parameters summarizationParameters `json:"parameters"`
	Options    requestOptions          `json:"options"`
}

type summarizationParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type summarizationResult struct {
	SummaryText string `json:"summary_text"`
}

// Summarize runs the summarization model on chunk with deterministic decoding.
// minLength and maxLength are model tokens.
func (c *Client) Summarize(ctx context.Context, chunk string, minLength, maxLength int) (string, error) {
	req := summarizationRequest{
		Inputs: chunk,
		Parameters: summarizationParameters{
			MinLength: minLength,
			MaxLength: maxLength,
			DoSample:  false,
		},
		Options: requestOptions{WaitForModel: true},
	}

	var results []summarizationResult
	if err := c.post(ctx, c.summarizationModel, req, &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("huggingface %s returned no summaries", c.summarizationModel)
	}
	return strings.TrimSpace(results[0].SummaryText), nil
}

type qaRequest struct {
	Inputs  qaInputs       `json:"inputs"`
	Options requestOptions `json:"options"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaResult struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// AnswerQuestion runs the extractive QA model and returns its span and score
func (c *Client) AnswerQuestion(ctx context.Context, question, docContext string) (string, float64, error) {
	req := qaRequest{
		Inputs:  qaInputs{Question: question, Context: docContext},
		Options: requestOptions{WaitForModel: true},
	}

	var result qaResult
	if err := c.post(ctx, c.qaModel, req, &result); err != nil {
		return "", 0, err
	}
	return result.Answer, result.Score, nil
}

func (c *Client) post(ctx context.Context, model string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/"+model, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("huggingface %s request failed: %w", model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Model: model, Message: errorMessage(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", model, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} when present
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
