package main

import (
	"os"

	"github.com/sessionguard-dev/sessionguard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
