package main

import (
	"fmt"
	"os"

	"github.com/zxdong262/task-runner/internal/cli/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
