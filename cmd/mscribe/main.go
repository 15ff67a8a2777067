package main

import (
	"fmt"
	"os"

	"meetscribe/cmd/mscribe/cmd"
	"meetscribe/internal/config"
)

func main() {
	// Missing keys only disable the matching features, so warn and
	// keep going instead of exiting.
	if _, err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
