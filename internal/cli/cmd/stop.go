package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/zxdong262/task-runner/internal/cli/client"
	"github.com/zxdong262/task-runner/pkg/api"
)

// NewStopCommand creates the stop command
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Stop a tracked script",
		Args:  cobra.ExactArgs(1),
		Run:   runStop,
	}
}

func runStop(cmd *cobra.Command, args []string) {
	resp, err := client.SendRequest(http.MethodPost, "/api/scripts/stop/"+args[0], nil)
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
		fmt.Printf("Stop failed: %s\n", string(body))
		return
	}

	var result api.StopResult
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	if !result.Success {
		fmt.Printf("Stop failed: %s\n", result.Error)
		return
	}
	fmt.Printf("Stopped %s (pid %d) after %dms\n", result.ID, result.PID, result.Duration)
}
