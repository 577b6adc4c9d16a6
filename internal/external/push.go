package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "cinecatch/internal/errors"
)

// FailureReason classifies a per-token delivery failure. Only Unregistered
// and InvalidArgument mark the token itself as invalid; everything else is
// treated as transient.
type FailureReason string

const (
	FailureUnregistered    FailureReason = "UNREGISTERED"
	FailureInvalidArgument FailureReason = "INVALID_ARGUMENT"
	FailureOther           FailureReason = "OTHER"
)

// SendOutcome is the gateway's verdict for a single token in a batch.
type SendOutcome struct {
	Token   string
	Success bool
	Reason  FailureReason
}

type PushConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PushClient talks to the push gateway's batch-send endpoint. A client
// constructed without a base URL is explicitly uninitialized; callers must
// check Initialized before sending.
type PushClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	initialized bool
}

func NewPushClient(cfg PushConfig) *PushClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &PushClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		initialized: cfg.BaseURL != "",
	}
}

// Initialized reports whether the client was constructed with a gateway
// endpoint. The fan-out engine fails soft when this is false.
func (pc *PushClient) Initialized() bool {
	return pc != nil && pc.initialized
}

type sendBatchRequest struct {
	Tokens       []string         `json:"tokens"`
	Notification pushNotification `json:"notification"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendBatchResponse struct {
	Results []sendBatchResult `json:"results"`
}

type sendBatchResult struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SendBatch delivers one title/body pair to every token in a single call.
// An empty token list returns an empty result without touching the network.
func (pc *PushClient) SendBatch(ctx context.Context, tokens []string, title, body string) ([]SendOutcome, error) {
	if len(tokens) == 0 {
		return []SendOutcome{}, nil
	}
	if !pc.Initialized() {
		return nil, fmt.Errorf("push client not initialized: %w", apperrors.ErrGatewayUnavailable)
	}

	reqBody := sendBatchRequest{
		Tokens:       tokens,
		Notification: pushNotification{Title: title, Body: body},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.baseURL+"/v1/messages/batch", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if pc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+pc.apiKey)
	}

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result sendBatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	outcomes := make([]SendOutcome, len(result.Results))
	for i, r := range result.Results {
		outcomes[i] = SendOutcome{
			Token:   r.Token,
			Success: r.Status == "SUCCESS",
			Reason:  failureReason(r.Error),
		}
	}

	return outcomes, nil
}

func failureReason(raw string) FailureReason {
	switch FailureReason(raw) {
	case FailureUnregistered:
		return FailureUnregistered
	case FailureInvalidArgument:
		return FailureInvalidArgument
	case "":
		return ""
	default:
		return FailureOther
	}
}
