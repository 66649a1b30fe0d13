package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/zxdong262/task-runner/internal/cli/client"
	"github.com/zxdong262/task-runner/pkg/api"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Launch a script on the server",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRun,
	}

	cmd.Flags().Bool("one-time", false, "Fire and forget: do not track the process")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) {
	oneTime, err := cmd.Flags().GetBool("one-time")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	req := api.RunRequest{
		Script:  args[0],
		Args:    args[1:],
		OneTime: oneTime,
	}
	jsonData, err := json.Marshal(req)
	if err != nil {
		fmt.Printf("Error: Failed to serialize data - %v\n", err)
		return
	}

	resp, err := client.SendRequest(http.MethodPost, "/api/scripts/run", bytes.NewBuffer(jsonData))
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
		fmt.Printf("Run failed: %s\n", string(body))
		return
	}

	var result api.RunResult
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	if !result.Success {
		fmt.Printf("Run failed: %s\n", result.Error)
		return
	}
	fmt.Printf("Started %s (mode %s, id %s, pid %d)\n", result.Script, result.Mode, result.ID, result.PID)
}
