// Package api talks to the two OnlyFoods pipelines: the image/caption search
// backend (pipeline 1) and the business-analysis backend (pipeline 2).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

const uploadFileName = "IMG_0001.jpeg"

// Client issues requests against both pipeline base URLs. The zero timeout
// mirrors the app's behaviour of waiting as long as the backend takes; callers
// pass a context when they want a deadline.
type Client struct {
	pipeline1  string
	pipeline2  string
	httpClient *http.Client
}

func NewClient(pipeline1, pipeline2 string) *Client {
	return &Client{
		pipeline1:  strings.TrimRight(pipeline1, "/"),
		pipeline2:  strings.TrimRight(pipeline2, "/"),
		httpClient: &http.Client{},
	}
}

// SubmitSearch posts the query as multipart form data. Queries with an image
// go to /search-image, description-only queries to /search-caption.
func (c *Client) SubmitSearch(ctx context.Context, q SearchQuery) (SearchResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if q.HasImage() {
		if err := attachImage(writer, q.ImagePath); err != nil {
			return SearchResult{}, err
		}
	} else {
		// The caption endpoint derives the Yelp query from this field.
		if err := writer.WriteField("caption", q.Description); err != nil {
			return SearchResult{}, newRequestError("search", err.Error(), 0)
		}
	}

	fields := map[string]string{
		"Location":     q.City,
		"user_query":   q.Description,
		"Latitude":     q.Latitude,
		"Longitude":    q.Longitude,
		"Date":         q.Date,
		"Time":         q.Time,
		"save_to_file": "false",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return SearchResult{}, newRequestError("search", err.Error(), 0)
		}
	}
	if err := writer.Close(); err != nil {
		return SearchResult{}, newRequestError("search", err.Error(), 0)
	}

	endpoint := c.pipeline1 + "/search-caption"
	if q.HasImage() {
		endpoint = c.pipeline1 + "/search-image"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return SearchResult{}, newRequestError("search", err.Error(), 0)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result SearchResult
	if err := c.do(req, "search", &result); err != nil {
		return SearchResult{}, err
	}
	return result, nil
}

// FetchDetails posts the candidate's reference URL to the analysis endpoint.
// The body is the bare JSON-encoded URL string; the backend accepts both that
// and the object form.
func (c *Client) FetchDetails(ctx context.Context, referenceURL string) (BusinessDetails, error) {
	payload, err := json.Marshal(referenceURL)
	if err != nil {
		return BusinessDetails{}, newRequestError("analyze", err.Error(), 0)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pipeline2+"/analyze-business", bytes.NewReader(payload))
	if err != nil {
		return BusinessDetails{}, newRequestError("analyze", err.Error(), 0)
	}
	req.Header.Set("Content-Type", "application/json")

	var details BusinessDetails
	if err := c.do(req, "analyze", &details); err != nil {
		return BusinessDetails{}, err
	}
	return details, nil
}

// Health probes the search pipeline. Diagnostic only; the main flow never
// depends on it.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pipeline1+"/health", nil)
	if err != nil {
		return newRequestError("health", err.Error(), 0)
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(req, "health", &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return newRequestError("health", fmt.Sprintf("unexpected status %q", status.Status), 0)
	}
	return nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newRequestError(op, err.Error(), 0)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newRequestError(op, err.Error(), resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(op, remoteMessage(raw), resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newRequestError(op, "malformed response: "+err.Error(), resp.StatusCode)
	}
	return nil
}

// remoteMessage pulls the human-readable message out of a pipeline error
// body. Both backends wrap failures as {"detail": ...}.
func remoteMessage(raw []byte) string {
	var wrapped struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Detail) > 0 {
		var text string
		if err := json.Unmarshal(wrapped.Detail, &text); err == nil {
			return text
		}
		return string(wrapped.Detail)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "request failed"
	}
	return text
}

func attachImage(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return newRequestError("search", fmt.Sprintf("open image %s: %v", filepath.Base(path), err), 0)
	}
	defer file.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, uploadFileName))
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return newRequestError("search", err.Error(), 0)
	}
	if _, err := io.Copy(part, file); err != nil {
		return newRequestError("search", err.Error(), 0)
	}
	return nil
}
