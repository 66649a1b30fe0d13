// Package client is the HTTP side of the CLI: request construction
// with basic auth, response reading.
package client

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var (
	serverURL = "http://127.0.0.1:8080"
	username  = "admin"
	password  = "changeme"
)

func init() {
	if v := os.Getenv("RUNNER_SERVER"); v != "" {
		serverURL = v
	}
	if v := os.Getenv("RUNNER_USER"); v != "" {
		username = v
	}
	if v := os.Getenv("RUNNER_PASSWORD"); v != "" {
		password = v
	}
}

// Configure overrides the connection settings, typically from root
// command flags.
func Configure(server, user, pass string) {
	if server != "" {
		serverURL = server
	}
	if user != "" {
		username = user
	}
	if pass != "" {
		password = pass
	}
}

func SendRequest(method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, serverURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	return client.Do(req)
}

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, fmt.Errorf("response is nil")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}
