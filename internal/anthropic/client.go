package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// Client talks to the Anthropic Messages API over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client authenticating with apiKey.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one Messages API call.
type Request struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      string
	Messages    []Message
}

// messagesRequest is the wire form of a Messages API request.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
	Messages    []Message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// APIError is an error response from the Messages API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Type is the API error type string (e.g. "invalid_request_error",
	// "rate_limit_error").
	Type string

	// Message is the human-readable error description.
	Message string
}

func (err *APIError) Error() string {
	if err.Type != "" {
		return fmt.Sprintf("anthropic: HTTP %d: %s: %s", err.StatusCode, err.Type, err.Message)
	}
	return fmt.Sprintf("anthropic: HTTP %d: %s", err.StatusCode, err.Message)
}

// Complete sends a non-streaming request and returns the response text,
// concatenated across text content blocks.
func (client *Client) Complete(ctx context.Context, request Request) (string, error) {
	httpResponse, err := client.post(ctx, request, false)
	if err != nil {
		return "", err
	}
	defer httpResponse.Body.Close()

	var decoded messagesResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("anthropic: decoding response: %w", err)
	}

	var text strings.Builder
	for _, block := range decoded.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}

// Stream sends a streaming request, invoking onText for each text delta
// as it arrives. It returns the accumulated text once the stream ends.
// onText may be nil.
func (client *Client) Stream(ctx context.Context, request Request, onText func(delta string)) (string, error) {
	httpResponse, err := client.post(ctx, request, true)
	if err != nil {
		return "", err
	}
	defer httpResponse.Body.Close()

	var text strings.Builder
	scanner := NewSSEScanner(httpResponse.Body)
	for scanner.Next() {
		event := scanner.Event()

		switch event.Type {
		case "content_block_delta":
			var envelope struct {
				Delta struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"delta"`
			}
			if err := json.Unmarshal([]byte(event.Data), &envelope); err != nil {
				return "", fmt.Errorf("anthropic: parsing content_block_delta: %w", err)
			}
			if envelope.Delta.Type == "text_delta" && envelope.Delta.Text != "" {
				text.WriteString(envelope.Delta.Text)
				if onText != nil {
					onText(envelope.Delta.Text)
				}
			}

		case "error":
			return "", streamError(event.Data)

		case "message_stop":
			return text.String(), nil
		}
		// Remaining event types (message_start, ping, content block
		// boundaries, message_delta) carry nothing we need.
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("anthropic: reading stream: %w", err)
	}
	return text.String(), nil
}

// post marshals request and sends it to the Messages endpoint. Non-200
// responses come back as an *APIError with the body already closed; on
// success the caller owns the body.
func (client *Client) post(ctx context.Context, request Request, stream bool) (*http.Response, error) {
	wire := messagesRequest{
		Model:       request.Model,
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
		System:      request.System,
		Stream:      stream,
		Messages:    request.Messages,
	}
	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshaling request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: creating request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("x-api-key", client.apiKey)
	httpRequest.Header.Set("anthropic-version", apiVersion)
	if stream {
		httpRequest.Header.Set("Accept", "text/event-stream")
	}

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("anthropic: sending request: %w", err)
	}
	if httpResponse.StatusCode != http.StatusOK {
		defer httpResponse.Body.Close()
		return nil, readAPIError(httpResponse)
	}
	return httpResponse, nil
}

// readAPIError decodes the standard error envelope
// {"error":{"type":"...","message":"..."}}, falling back to the raw
// body when the envelope doesn't parse.
func readAPIError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		return &APIError{
			StatusCode: httpResponse.StatusCode,
			Type:       wireError.Error.Type,
			Message:    wireError.Error.Message,
		}
	}
	return &APIError{
		StatusCode: httpResponse.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}

func streamError(data string) error {
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(data), &envelope) == nil && envelope.Error.Message != "" {
		return fmt.Errorf("anthropic: stream error: %s: %s", envelope.Error.Type, envelope.Error.Message)
	}
	return fmt.Errorf("anthropic: stream error: %s", data)
}
