package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const createTimeout = 30 * time.Second

// Client talks to the external project-creation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: createTimeout,
		},
	}
}

// Create posts the assembled payload and returns the created project. A non-2xx
// response is returned as *APIError carrying the server's message so the
// caller can surface it to the user.
func (c *Client) Create(ctx context.Context, payload CreatePayload) (*CreatedProject, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/projects", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		recordCreateCall(duration, err)
		return nil, fmt.Errorf("project service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordCreateCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return nil, c.apiError(resp)
	}
	recordCreateCall(duration, nil)

	var created CreatedProject
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode creation response: %w", err)
	}
	return &created, nil
}

func (c *Client) apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.text()
	}
	return apiErr
}
