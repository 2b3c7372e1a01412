package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// ServiceClient calls modifyTalkerMessage on a remote node.
type ServiceClient struct {
	client  ports.HTTPClient
	baseURL string
}

// NewServiceClient creates a client for the node at baseURL.
// A baseURL without a scheme is treated as http.
func NewServiceClient(client ports.HTTPClient, baseURL string) *ServiceClient {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &ServiceClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Modify sends req and returns the node's confirmation.
func (c *ServiceClient) Modify(ctx context.Context, req domain.ModifyRequest) (domain.ModifyResponse, error) {
	body, err := json.Marshal(modifyRequest{InputStr: req.Input})
	if err != nil {
		return domain.ModifyResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ModifyPath, bytes.NewReader(body))
	if err != nil {
		return domain.ModifyResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.ModifyResponse{}, fmt.Errorf("call %s: %w", domain.ModifyServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.ModifyResponse{}, fmt.Errorf("call %s: status %d: %s",
			domain.ModifyServiceName, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out modifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ModifyResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return domain.ModifyResponse{Modified: out.ModifiedStr}, nil
}
