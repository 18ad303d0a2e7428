package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// FailureKind classifies a failed generation attempt
type FailureKind string

const (
	FailureRateLimit      FailureKind = "rate_limit"
	FailureModelLoading   FailureKind = "model_loading"
	FailureAuthentication FailureKind = "authentication"
	FailureBadRequest     FailureKind = "bad_request"
	FailureAPIError       FailureKind = "api_error"
	FailureTimeout        FailureKind = "timeout"
	FailureConfiguration  FailureKind = "configuration"
	FailureUnknown        FailureKind = "unknown"
)

// GenerationError is the only error shape that crosses the client boundary.
// Raw transport and API errors are folded into it.
type GenerationError struct {
	Kind       FailureKind
	Message    string
	Status     int
	Retryable  bool
	RetryAfter time.Duration
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// GenerateOptions override the client defaults per call. Zero values fall
// back to the configured defaults.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// ResponseMetadata records how an answer was produced
type ResponseMetadata struct {
	Model        string
	TokensUsed   int
	ResponseTime int64 // milliseconds
	Temperature  float64
	MaxTokens    int
}

// GenerationResult is a successful generation
type GenerationResult struct {
	Answer   string
	Metadata ResponseMetadata
}

// HFClient calls the Hugging Face text-generation inference API
type HFClient struct {
	client   *http.Client
	apiKey   string
	model    string
	baseURL  string
	timeout  time.Duration
	defaults GenerateOptions
}

func NewHFClient(apiKey, model, baseURL string, defaults GenerateOptions, timeout time.Duration) *HFClient {
	if model == "" {
		model = "ibm-granite/granite-3.3-2b-instruct"
	}
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models/" + model
	}
	if defaults.MaxTokens == 0 {
		defaults.MaxTokens = 512
	}
	if defaults.Temperature == 0 {
		defaults.Temperature = 0.7
	}
	if defaults.TopP == 0 {
		defaults.TopP = 0.9
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HFClient{
		client:   &http.Client{},
		apiKey:   apiKey,
		model:    model,
		baseURL:  baseURL,
		timeout:  timeout,
		defaults: defaults,
	}
}

// Model returns the configured model name
func (c *HFClient) Model() string {
	return c.model
}

type generationParameters struct {
	MaxLength      int     `json:"max_length"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generationOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
	Options    generationOptions    `json:"options"`
}

type generationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate issues one bounded-timeout call to the inference endpoint. It
// never loops on retryable failures; the caller owns the retry policy. The
// returned error is always a *GenerationError.
func (c *HFClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (*GenerationResult, error) {
	if c.apiKey == "" {
		return nil, &GenerationError{Kind: FailureConfiguration, Message: "Hugging Face API key not configured"}
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, &GenerationError{Kind: FailureBadRequest, Message: "prompt is required"}
	}

	if opts.MaxTokens == 0 {
		opts.MaxTokens = c.defaults.MaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = c.defaults.Temperature
	}
	if opts.TopP == 0 {
		opts.TopP = c.defaults.TopP
	}

	reqBody := generationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxLength:      opts.MaxTokens,
			Temperature:    opts.Temperature,
			TopP:           opts.TopP,
			DoSample:       true,
			ReturnFullText: false,
		},
		// wait_for_model is an API-level courtesy only; the explicit retry
		// on 503 lives in the caller.
		Options: generationOptions{WaitForModel: true, UseCache: false},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &GenerationError{Kind: FailureUnknown, Message: fmt.Sprintf("failed to marshal request body: %v", err)}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &GenerationError{Kind: FailureUnknown, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		var nerr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
			return nil, &GenerationError{
				Kind:      FailureTimeout,
				Message:   "request timeout - model may be overloaded",
				Retryable: true,
			}
		}
		return nil, &GenerationError{Kind: FailureUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Kind: FailureUnknown, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, resp.Header.Get("Retry-After"), body)
	}

	elapsed := time.Since(start)
	answer := CleanResponse(extractGeneratedText(body), prompt)

	return &GenerationResult{
		Answer: answer,
		Metadata: ResponseMetadata{
			Model:        c.model,
			TokensUsed:   EstimateTokens(answer),
			ResponseTime: elapsed.Milliseconds(),
			Temperature:  opts.Temperature,
			MaxTokens:    opts.MaxTokens,
		},
	}, nil
}

// extractGeneratedText pulls generated_text out of either response shape:
// an array of objects or a single object.
func extractGeneratedText(body []byte) string {
	var arr []generationResponse
	if err := json.Unmarshal(body, &arr); err == nil && len(arr) > 0 {
		return arr[0].GeneratedText
	}
	var single generationResponse
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText
	}
	return ""
}

// apiErrorBody is the loosely-shaped error payload of the inference API.
// No field is guaranteed to be present.
type apiErrorBody struct {
	Error json.RawMessage `json:"error"`
}

func extractErrorMessage(body []byte) string {
	var payload apiErrorBody
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Error) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(payload.Error, &msg); err == nil {
		return msg
	}
	var msgs []string
	if err := json.Unmarshal(payload.Error, &msgs); err == nil {
		return strings.Join(msgs, "; ")
	}
	return ""
}

func classifyStatus(status int, retryAfterHeader string, body []byte) *GenerationError {
	msg := extractErrorMessage(body)

	switch status {
	case http.StatusTooManyRequests:
		retryAfter := 60 * time.Second
		if secs, err := strconv.Atoi(retryAfterHeader); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
		return &GenerationError{
			Kind:       FailureRateLimit,
			Message:    "Rate limit exceeded",
			Status:     status,
			Retryable:  true,
			RetryAfter: retryAfter,
		}
	case http.StatusServiceUnavailable:
		return &GenerationError{
			Kind:       FailureModelLoading,
			Message:    "Model is loading, please try again in a few moments",
			Status:     status,
			Retryable:  true,
			RetryAfter: 30 * time.Second,
		}
	case http.StatusUnauthorized:
		return &GenerationError{Kind: FailureAuthentication, Message: "Invalid API key", Status: status}
	case http.StatusBadRequest:
		if msg == "" {
			msg = "Invalid request parameters"
		}
		return &GenerationError{Kind: FailureBadRequest, Message: msg, Status: status}
	default:
		if msg == "" {
			msg = fmt.Sprintf("API error: %d", status)
		}
		return &GenerationError{Kind: FailureAPIError, Message: msg, Status: status}
	}
}

const fallbackAnswer = "I apologize, but I could not generate a proper response based on the provided context."

var boilerplatePrefixes = []string{"Answer:", "Response:", "Based on the provided context,"}

// CleanResponse normalizes raw model output: strips an echoed prompt,
// removes boilerplate prefixes, and guarantees terminal punctuation.
// Applying it twice yields the same string.
func CleanResponse(response, prompt string) string {
	cleaned := strings.TrimSpace(response)

	if prompt != "" && strings.HasPrefix(cleaned, prompt) {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prompt))
	}

	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
		}
	}

	if cleaned != "" && !strings.ContainsAny(cleaned[len(cleaned)-1:], ".!?") {
		cleaned += "."
	}

	if cleaned == "" {
		return fallbackAnswer
	}
	return cleaned
}

// EstimateTokens approximates token usage as ceil(len/4). Crude on purpose;
// it feeds metadata, not billing.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
