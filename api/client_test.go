package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			t.Errorf("path = %s, want /token", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("username") != "ada@example.com" {
			t.Errorf("username = %s", r.PostForm.Get("username"))
		}
		if r.PostForm.Get("password") != "hunter22" {
			t.Errorf("password missing")
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestMeSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-123" {
			t.Errorf("Authorization = %q", auth)
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.Name != "Ada" || user.ID != "u1" {
		t.Errorf("user = %+v", user)
	}
}

func TestMeRejectedCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("stale")

	_, err := client.Me(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if !apiErr.Unauthorized() {
		t.Errorf("Unauthorized() = false, status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Could not validate credentials" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestRegisterSurfacesFirstValidationMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","password"],"msg":"La contraseña debe tener al menos 8 caracteres","type":"value_error"},{"msg":"other"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Register(context.Background(), "Ada", "ada@example.com", "short")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Detail != "La contraseña debe tener al menos 8 caracteres" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestChatPayloadAndReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %s, want /chat", r.URL.Path)
		}

		var req struct {
			Message        string     `json:"message"`
			History        []ChatTurn `json:"history"`
			ConversationID string     `json:"conversation_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if req.Message != "what is 2+2?" {
			t.Errorf("message = %q", req.Message)
		}
		if len(req.History) != 2 || req.History[0].Sender != "assistant" || req.History[1].Text != "hi" {
			t.Errorf("history = %+v", req.History)
		}
		if req.ConversationID != "c9" {
			t.Errorf("conversation_id = %q", req.ConversationID)
		}

		json.NewEncoder(w).Encode(ChatResponse{Response: "4", ConversationID: "c9"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	history := []ChatTurn{
		{Sender: "assistant", Text: "hello"},
		{Sender: "user", Text: "hi"},
	}
	resp, err := client.Chat(context.Background(), "what is 2+2?", history, "c9")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Response != "4" {
		t.Errorf("response = %q, want 4", resp.Response)
	}
}

func TestCalculateDefaultsVars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Image      string            `json:"image"`
			DictOfVars map[string]string `json:"dict_of_vars"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if req.Image != "data:image/png;base64,AAAA" {
			t.Errorf("image = %q", req.Image)
		}
		if req.DictOfVars == nil {
			t.Error("dict_of_vars should marshal as an empty mapping, not null")
		}

		w.Write([]byte(`{"status":"success","data":[{"expr":"2+2","result":4},{"expr":"x","result":"2"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	results, err := client.Calculate(context.Background(), "data:image/png;base64,AAAA", nil)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Expr != "2+2" {
		t.Errorf("results[0].Expr = %q", results[0].Expr)
	}
}

func TestNewConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/new" || r.Method != http.MethodPost {
			t.Errorf("%s %s, want POST /conversations/new", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"conversation_id": "c42"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	id, err := client.NewConversation(context.Background())
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	if id != "c42" {
		t.Errorf("id = %q, want c42", id)
	}
}

// Requests run on their own goroutines while logout swaps the token
// from the update loop, so the token accessors must be safe to call
// concurrently. Run with -race.
func TestTokenConcurrentAccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(User{ID: "u1", Name: "Ada"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client.Me(context.Background())
		}()
		go func() {
			defer wg.Done()
			client.ClearToken()
			client.HasToken()
			client.SetToken("tok")
		}()
	}
	wg.Wait()
}

func TestDecodeErrorFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"StringDetail", 422, `{"detail":"bad image"}`, "bad image"},
		{"EmptyBody", 500, ``, ""},
		{"MalformedBody", 502, `<html>gateway</html>`, ""},
		{"EmptyList", 422, `{"detail":[]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := decodeError(tt.status, []byte(tt.body))
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", apiErr.Detail, tt.detail)
			}
		})
	}
}
