package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Client calls the legacy math tools endpoint: a single HTTP POST
// carrying a JSON-RPC 2.0 "tools/call" envelope per request. There is
// no session handshake; each call stands alone.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string                  `json:"jsonrpc"`
	ID      string                  `json:"id"`
	Method  string                  `json:"method"`
	Params  mcptypes.CallToolParams `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// ToolError is a JSON-RPC error returned by the tools endpoint. Its
// message is the user-facing reply.
type ToolError struct {
	Code    int
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

// CallTool invokes one math tool and returns the text of the first
// content item of the result.
func (c *Client) CallTool(ctx context.Context, tool string, args map[string]any) (string, error) {
	envelope := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  "tools/call",
		Params: mcptypes.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool call: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build tool call: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tool call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read tool response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return "", fmt.Errorf("failed to decode tool response: %w", err)
	}

	if rpcResp.Error != nil {
		return "", &ToolError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}
	if len(rpcResp.Result) == 0 {
		return "", fmt.Errorf("tool response carried neither result nor error")
	}

	raw := json.RawMessage(rpcResp.Result)
	result, err := mcptypes.ParseCallToolResult(&raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse tool result: %w", err)
	}

	for _, content := range result.Content {
		if text, ok := mcptypes.AsTextContent(content); ok {
			return text.Text, nil
		}
	}

	return "", fmt.Errorf("tool result carried no text content")
}
