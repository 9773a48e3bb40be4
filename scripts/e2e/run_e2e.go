// Package main runs black-box checks against a deployed lead relay.
//
// Scenarios:
//   - method-not-allowed: GET is answered with 405
//   - incomplete: a submission without name is answered with 400
//   - send: a complete submission is relayed (sends a real email; opt-in)
//
// Usage:
//
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go              # safe scenarios only
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go send         # runs one
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const relayPath = "/api/send-email"

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type scenario struct {
	name       string
	method     string
	body       string
	wantStatus int
	wantOK     bool
	optIn      bool
}

var scenarios = []scenario{
	{name: "method-not-allowed", method: http.MethodGet, wantStatus: http.StatusMethodNotAllowed},
	{
		name:       "incomplete",
		method:     http.MethodPost,
		body:       `{"nome":"","email":"e2e@example.com","assunto":"e2e"}`,
		wantStatus: http.StatusBadRequest,
	},
	{
		name:       "send",
		method:     http.MethodPost,
		body:       `{"nome":"E2E","email":"e2e@example.com","assunto":"Teste automatizado","mensagem":"ignore"}`,
		wantStatus: http.StatusOK,
		wantOK:     true,
		optIn:      true,
	},
}

func main() {
	apiBase := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiBase == "" {
		fmt.Fprintln(os.Stderr, "API_BASE_URL is required")
		os.Exit(2)
	}

	only := ""
	if len(os.Args) > 1 {
		only = os.Args[1]
	}

	client := &http.Client{Timeout: 30 * time.Second}
	failed := 0
	for _, sc := range scenarios {
		if only != "" && sc.name != only {
			continue
		}
		if only == "" && sc.optIn {
			fmt.Printf("SKIP %s (run explicitly)\n", sc.name)
			continue
		}
		if err := run(client, apiBase, sc); err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", sc.name, err)
			continue
		}
		fmt.Printf("PASS %s\n", sc.name)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, apiBase string, sc scenario) error {
	req, err := http.NewRequest(sc.method, apiBase+relayPath, bytes.NewBufferString(sc.body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != sc.wantStatus {
		return fmt.Errorf("status %d, want %d (body %s)", resp.StatusCode, sc.wantStatus, raw)
	}
	var out relayResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode body %q: %w", raw, err)
	}
	if out.Success != sc.wantOK {
		return fmt.Errorf("success=%v, want %v (%s)", out.Success, sc.wantOK, out.Message)
	}
	return nil
}
