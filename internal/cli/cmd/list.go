package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/zxdong262/task-runner/internal/cli/client"
	"github.com/zxdong262/task-runner/pkg/api"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked scripts or show one script with its output",
		Run:   runList,
	}

	cmd.Flags().StringP("id", "i", "", "Specific script ID to show")

	return cmd
}

func runList(cmd *cobra.Command, args []string) {
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	path := "/api/scripts"
	if id != "" {
		path = "/api/scripts/" + id
	}

	resp, err := client.SendRequest(http.MethodGet, path, nil)
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
		fmt.Printf("List failed: %s\n", string(body))
		return
	}

	var result interface{}
	if id != "" {
		var detail api.TaskDetail
		if err := json.Unmarshal(body, &detail); err != nil {
			fmt.Printf("Error: Failed to parse response - %v\n", err)
			return
		}
		result = detail
	} else {
		var list api.ListResult
		if err := json.Unmarshal(body, &list); err != nil {
			fmt.Printf("Error: Failed to parse response - %v\n", err)
			return
		}
		result = list
	}

	formatted, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Error: Failed to format output - %v\n", err)
		return
	}
	fmt.Println(string(formatted))
}
