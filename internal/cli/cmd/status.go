package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/zxdong262/task-runner/internal/cli/client"
	"github.com/zxdong262/task-runner/pkg/api"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status and task counts",
		Run:   runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) {
	resp, err := client.SendRequest(http.MethodGet, "/api/status", nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Status failed: %s\n", string(body))
		return
	}

	var result api.StatusResult
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	formatted, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Error: Failed to format output - %v\n", err)
		return
	}
	fmt.Println(string(formatted))
}
