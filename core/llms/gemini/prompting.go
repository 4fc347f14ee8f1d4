package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hirevox/screener/core/llms"
	"github.com/jinzhu/copier"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel = "gemini-1.5-flash"
)

// Client generates interviewer replies through the Gemini generateContent
// API.
type Client struct {
	apiKey  string
	model   string
	baseURL string

	options llms.PromptOptions
}

func NewClient(apiKey string, model string, opts ...llms.PromptOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not found")
	}
	if model == "" {
		model = DefaultModel
	}

	client := &Client{apiKey: apiKey, model: model, baseURL: baseURL}
	for _, opt := range opts {
		opt(&client.options)
	}
	return client, nil
}

// Generate produces one candidate reply for the trailing conversation
// window, instructing the model to avoid the already asked questions.
func (c *Client) Generate(ctx context.Context, history []llms.Message, askedQuestions []string) (string, error) {
	opts := []llms.PromptOption{
		llms.WithInstructions(llms.InterviewerInstructions(askedQuestions)),
		llms.WithHistory(history),
		llms.WithAskedQuestions(askedQuestions),
	}
	if c.options.RequestTimeout > 0 {
		opts = append(opts, llms.WithRequestTimeout(c.options.RequestTimeout))
	}

	return Prompt(ctx, c.apiKey, c.model, c.baseURL, opts...)
}

func Prompt(
	ctx context.Context,
	apiKey string,
	model string,
	endpoint string,
	opts ...llms.PromptOption,
) (string, error) {
	ctx, span := tracer.Start(ctx, "gemini generate content")
	defer span.End()

	options := llms.PromptOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	history := []llms.Message{}
	if err := copier.Copy(&history, options.History); err != nil {
		return "", fmt.Errorf("error copying history: %w", err)
	}

	contents := []content{}
	if options.Instructions != "" {
		contents = append(contents, content{
			Role:  contentRoleUser,
			Parts: []part{{Text: options.Instructions}},
		})
	}
	for _, message := range history {
		contents = append(contents, content{
			Role:  toContentRole(message.Role),
			Parts: []part{{Text: message.Content}},
		})
	}

	requestBodyBytes, err := json.Marshal(requestBody{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", endpoint, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", fmt.Errorf("error creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   options.RequestTimeout,
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("non-OK HTTP status %s: %s", resp.Status, string(body))
	}

	var response responseBody
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("error unmarshalling JSON: %w", err)
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var reply strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}

	return strings.TrimSpace(reply.String()), nil
}

type contentRole string

const (
	contentRoleUser  contentRole = "user"
	contentRoleModel contentRole = "model"
)

func toContentRole(role llms.Role) contentRole {
	if role == llms.RoleAssistant {
		return contentRoleModel
	}
	return contentRoleUser
}

type requestBody struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  contentRole `json:"role"`
	Parts []part      `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type responseBody struct {
	Candidates []struct {
		Content struct {
			Role  string `json:"role"`
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
