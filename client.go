package lianke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://print.liankenet.com"

	deviceInfoEndpoint    = "/device/info"
	printerListEndpoint   = "/printing/printer_list"
	printerParamsEndpoint = "/printing/printer_params"
	printerStatusEndpoint = "/printing/printer_status"
	printJobEndpoint      = "/printing/job"

	scannerListEndpoint   = "/scanning/scanner_list"
	scannerParamsEndpoint = "/scanning/scanner_params"
	scannerStatusEndpoint = "/scanning/scanner_status"
	scanJobEndpoint       = "/scanning/job"

	// Form field the job document is attached under.
	jobFileField = "jobFile"
)

// Client represents a Lianke print box API client. Every call is scoped to a
// single device; the ApiKey is sent as a header, the device ID and key travel
// as query or body fields.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	deviceID   string
	deviceKey  string
}

// Option is a function that configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Lianke client for one device.
func New(apiKey, deviceID, deviceKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		deviceID:   deviceID,
		deviceKey:  deviceKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Response is the envelope every Lianke endpoint wraps its payload in.
// A code of 200 denotes success; anything else is a service-reported fault.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Err converts a non-success envelope into an *APIError.
func (r Response) Err() error {
	if r.Code == http.StatusOK {
		return nil
	}
	return &APIError{Code: r.Code, Msg: r.Msg}
}

// APIError is a fault reported by the printing service itself.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lianke: service error %d: %s", e.Code, e.Msg)
}

// Document is a file ready to be attached to a print job submission.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// deviceParams returns the device credential fields attached to every call.
func (c *Client) deviceParams() url.Values {
	return url.Values{
		"deviceId":  []string{c.deviceID},
		"deviceKey": []string{c.deviceKey},
	}
}

// get issues a GET request with the device credentials merged into the query.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	query := c.deviceParams()
	for key, values := range params {
		query[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.do(req, v)
}

// send issues a request with a JSON body. Used for POST and DELETE verbs.
func (c *Client) send(ctx context.Context, method, endpoint string, body map[string]any, v any) error {
	payload := map[string]any{
		"deviceId":  c.deviceID,
		"deviceKey": c.deviceKey,
	}
	for key, value := range body {
		payload[key] = value
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, v)
}

// postMultipart issues a multipart POST carrying the document under the
// jobFile field and every other value as an accompanying form field.
func (c *Client) postMultipart(ctx context.Context, endpoint string, fields map[string]string, doc *Document, v any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	form := map[string]string{
		"deviceId":  c.deviceID,
		"deviceKey": c.deviceKey,
	}
	for key, value := range fields {
		form[key] = value
	}
	for key, value := range form {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("writing form field %s: %w", key, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, jobFileField, doc.Filename))
	header.Set("Content-Type", doc.MIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating document part: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return fmt.Errorf("writing document part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, v)
}

// do executes the request with the ApiKey credential attached and parses the
// response envelope into v.
func (c *Client) do(req *http.Request, v any) error {
	req.Header.Set("ApiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}

	return parseResponse(resp, v)
}

// parseResponse reads and parses the API response.
func parseResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("request failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
