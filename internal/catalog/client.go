package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GroupSpec describes a blend group as declared in the forecast catalog: the
// coordinate the blend runs along and the full set of member values expected
// to be present.
type GroupSpec struct {
	Name           string    `json:"name"`
	Coordinate     string    `json:"coordinate"`
	ExpectedValues []float64 `json:"expected_values"`
	Unit           string    `json:"unit,omitempty"`
	Method         string    `json:"method,omitempty"`
}

type Client interface {
	GetGroup(ctx context.Context, name string) (*GroupSpec, error)
	ListGroups(ctx context.Context) ([]GroupSpec, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) GetGroup(ctx context.Context, name string) (*GroupSpec, error) {
	body, err := c.doReq(ctx, http.MethodGet, "/api/v1/groups/"+name)
	if err != nil {
		return nil, err
	}
	var spec GroupSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return nil, fmt.Errorf("decode group spec: %w", err)
	}
	return &spec, nil
}

func (c *HTTPClient) ListGroups(ctx context.Context) ([]GroupSpec, error) {
	body, err := c.doReq(ctx, http.MethodGet, "/api/v1/groups")
	if err != nil {
		return nil, err
	}
	var specs []GroupSpec
	if err := json.Unmarshal(body, &specs); err != nil {
		return nil, fmt.Errorf("decode group specs: %w", err)
	}
	return specs, nil
}
