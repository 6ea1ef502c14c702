package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	uploadTimeout      = 60 * time.Second
	defaultRatePerSec  = 4
	defaultBurst       = 8
	uploadPurposeImage = "project_image"
)

// Client talks to the external file-storage service. Outbound calls are
// rate-limited so a large image batch cannot hammer the store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string, ratePerSec float64, burst int) *Client {
	if ratePerSec <= 0 {
		ratePerSec = defaultRatePerSec
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: uploadTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

// UploadResult mirrors the file service's response for a stored file.
type UploadResult struct {
	ID               int64  `json:"id"`
	File             string `json:"file"`
	OriginalFilename string `json:"original_filename"`
}

// APIError is a non-2xx response from the file service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("file service: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("file service: status %d", e.StatusCode)
}

// Upload stores a single file. Images attached to drafts are uploaded as
// temporary, non-public files; they become permanent on project creation.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}

	fields := map[string]string{
		"purpose":     uploadPurposeImage,
		"description": "",
		"is_public":   strconv.FormatBool(false),
		"is_temp":     strconv.FormatBool(true),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		recordUploadCall(duration, err)
		return nil, fmt.Errorf("file service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordUploadCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return nil, c.apiError(resp)
	}
	recordUploadCall(duration, nil)

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.OriginalFilename == "" {
		result.OriginalFilename = filename
	}
	return &result, nil
}

func (c *Client) apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = body.Detail
		}
	}
	return apiErr
}
