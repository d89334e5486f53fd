// Package location resolves the user's current position. The terminal app has
// no GPS, so the default provider asks a geo-IP endpoint; the interface keeps
// the TUI testable and lets the coordinates arrive before the city name.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/flow"
)

// Fix is one resolved position. City may be empty when only coordinates were
// available; ResolveCity fills it in separately.
type Fix struct {
	City      string
	Latitude  string
	Longitude string
}

// Provider looks up the device's position and resolves coordinates to a city.
type Provider interface {
	Locate(ctx context.Context) (Fix, error)
	ResolveCity(ctx context.Context, latitude, longitude string) (string, error)
}

// IPProvider resolves position from the machine's public IP using an
// ip-api.com compatible endpoint.
type IPProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewIPProvider(baseURL string) *IPProvider {
	return &IPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate returns the current position. A "fail" status from the endpoint is
// treated as a denied capability, matching how a refused device permission
// aborts the action but leaves manual city entry available.
func (p *IPProvider) Locate(ctx context.Context) (Fix, error) {
	resp, err := p.query(ctx, p.baseURL+"/json")
	if err != nil {
		return Fix{}, err
	}
	return Fix{
		City:      resp.City,
		Latitude:  strconv.FormatFloat(resp.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(resp.Lon, 'f', -1, 64),
	}, nil
}

// ResolveCity reverse-geocodes coordinates via the same endpoint. This can
// land well after Locate; callers gate the write with a generation token.
func (p *IPProvider) ResolveCity(ctx context.Context, latitude, longitude string) (string, error) {
	resp, err := p.query(ctx, fmt.Sprintf("%s/json?lat=%s&lon=%s", p.baseURL, latitude, longitude))
	if err != nil {
		return "", err
	}
	return resp.City, nil
}

func (p *IPProvider) query(ctx context.Context, url string) (ipResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ipResponse{}, err
	}
	httpResp, err := p.httpClient.Do(req)
	if err != nil {
		return ipResponse{}, fmt.Errorf("location lookup: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ipResponse{}, fmt.Errorf("location lookup: %w", err)
	}
	if httpResp.StatusCode == http.StatusForbidden || httpResp.StatusCode == http.StatusUnauthorized {
		return ipResponse{}, &flow.PermissionError{Capability: "location", Reason: "lookup refused by the geolocation service"}
	}
	if httpResp.StatusCode != http.StatusOK {
		return ipResponse{}, fmt.Errorf("location lookup: status %d", httpResp.StatusCode)
	}
	var resp ipResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ipResponse{}, fmt.Errorf("location lookup: %w", err)
	}
	if resp.Status != "" && resp.Status != "success" {
		reason := resp.Message
		if reason == "" {
			reason = "position unavailable"
		}
		return ipResponse{}, &flow.PermissionError{Capability: "location", Reason: reason}
	}
	return resp, nil
}
