package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func toolServer(t *testing.T, handler func(t *testing.T, req map[string]any) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(handler(t, req)))
	}))
}

func TestCallToolEnvelope(t *testing.T) {
	server := toolServer(t, func(t *testing.T, req map[string]any) string {
		if req["jsonrpc"] != "2.0" {
			t.Errorf("jsonrpc = %v, want 2.0", req["jsonrpc"])
		}
		if req["method"] != "tools/call" {
			t.Errorf("method = %v, want tools/call", req["method"])
		}
		if id, _ := req["id"].(string); id == "" {
			t.Error("id is missing")
		}

		params, _ := req["params"].(map[string]any)
		if params == nil {
			t.Fatal("params missing")
		}
		if params["name"] != ToolOperation {
			t.Errorf("params.name = %v, want %s", params["name"], ToolOperation)
		}
		args, _ := params["arguments"].(map[string]any)
		if args["expresion"] != "2+2" {
			t.Errorf("arguments.expresion = %v, want 2+2", args["expresion"])
		}

		return `{"jsonrpc":"2.0","id":"1","result":{"content":[{"type":"text","text":"Resultado: 4"}]}}`
	})
	defer server.Close()

	client := NewClient(server.URL)
	reply, err := client.CallTool(context.Background(), ToolOperation, map[string]any{"expresion": "2+2"})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if reply != "Resultado: 4" {
		t.Errorf("reply = %q, want %q", reply, "Resultado: 4")
	}
}

func TestCallToolError(t *testing.T) {
	server := toolServer(t, func(t *testing.T, req map[string]any) string {
		return `{"jsonrpc":"2.0","id":"1","error":{"code":-32602,"message":"El coeficiente 'm' no puede ser cero"}}`
	})
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CallTool(context.Background(), ToolLinear, map[string]any{"m": 0, "b": 1})
	if err == nil {
		t.Fatal("CallTool() expected error")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error type = %T, want *ToolError", err)
	}
	if toolErr.Message != "El coeficiente 'm' no puede ser cero" {
		t.Errorf("message = %q", toolErr.Message)
	}
	if toolErr.Code != -32602 {
		t.Errorf("code = %d, want -32602", toolErr.Code)
	}
}

func TestCallToolUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.CallTool(context.Background(), ToolOperation, map[string]any{"expresion": "2+2"})
	if err == nil {
		t.Fatal("CallTool() expected error for unreachable server")
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		t.Error("network failure should not be a ToolError")
	}
}
