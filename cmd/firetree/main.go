package main

import (
	"fmt"
	"os"

	"github.com/samvad-hq/firetree/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "firetree: %v\n", err)
		os.Exit(1)
	}
}
