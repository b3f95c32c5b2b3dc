package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// Exercises the chat endpoints against a running server with real API keys.
// Skipped unless TRIPWISE_API_BASE_URL is set.
func TestChatSessionFlow(t *testing.T) {
	t.Logf("[TEST LOG] starting TestChatSessionFlow")
	loadDotEnv(t)

	baseURL := strings.TrimRight(os.Getenv("TRIPWISE_API_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("TRIPWISE_API_BASE_URL not set; skipping integration test")
	}

	client := &http.Client{Timeout: 120 * time.Second}
	waitForAPIReady(t, client, baseURL)

	itinerary := "Day 1: Arrive in Paris, check in near the Louvre.\n" +
		"Day 2: Eiffel Tower in the morning, Seine cruise at sunset.\n" +
		"Day 3: Day trip to Versailles."

	status, body := postJSON(t, client, baseURL+"/api/chat/start", map[string]string{
		"itinerary": itinerary,
		"message":   "Which day do I visit the Eiffel Tower?",
	})
	if status != http.StatusOK {
		t.Fatalf("chat start: expected %d, got %d, body=%s", http.StatusOK, status, string(body))
	}
	var started struct {
		SessionID string `json:"session_id"`
		Answer    string `json:"answer"`
	}
	if err := json.Unmarshal(body, &started); err != nil {
		t.Fatalf("chat start: unmarshal response: %v, raw=%s", err, string(body))
	}
	if started.SessionID == "" {
		t.Fatalf("chat start: expected session_id, raw=%s", string(body))
	}
	if strings.TrimSpace(started.Answer) == "" {
		t.Fatalf("chat start: expected non-empty answer, raw=%s", string(body))
	}
	t.Logf("[TEST LOG] first answer: %s", started.Answer)

	status, body = postJSON(t, client, baseURL+"/api/chat/continue", map[string]string{
		"session_id": started.SessionID,
		"message":    "And what about Versailles?",
	})
	if status != http.StatusOK {
		t.Fatalf("chat continue: expected %d, got %d, body=%s", http.StatusOK, status, string(body))
	}
	var followup struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(body, &followup); err != nil {
		t.Fatalf("chat continue: unmarshal response: %v, raw=%s", err, string(body))
	}
	if strings.TrimSpace(followup.Answer) == "" {
		t.Fatalf("chat continue: expected non-empty answer, raw=%s", string(body))
	}

	resp, err := client.Get(baseURL + "/api/chat/" + started.SessionID + "/history")
	if err != nil {
		t.Fatalf("chat history: %v", err)
	}
	defer resp.Body.Close()
	historyBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat history: expected %d, got %d, body=%s", http.StatusOK, resp.StatusCode, string(historyBody))
	}
	var history struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(historyBody, &history); err != nil {
		t.Fatalf("chat history: unmarshal response: %v, raw=%s", err, string(historyBody))
	}
	if len(history.Messages) != 4 {
		t.Fatalf("chat history: expected 4 messages after two exchanges, got %d", len(history.Messages))
	}
}

func TestChatUnknownSessionReturns404(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(os.Getenv("TRIPWISE_API_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("TRIPWISE_API_BASE_URL not set; skipping integration test")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	waitForAPIReady(t, client, baseURL)

	status, body := postJSON(t, client, baseURL+"/api/chat/continue", map[string]string{
		"session_id": "no-such-session",
		"message":    "hello?",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected %d for unknown session, got %d, body=%s", http.StatusNotFound, status, string(body))
	}
}

func postJSON(t *testing.T, client *http.Client, url string, payload map[string]string) (int, []byte) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("call %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}

func loadDotEnv(t *testing.T) {
	t.Helper()
	// Test binaries run from the package directory; look upward for .env.
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}
