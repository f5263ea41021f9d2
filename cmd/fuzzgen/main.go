package main

import (
	"os"

	"github.com/G-Research/fuzzgen/cmd/fuzzgen/cmd"
	"github.com/G-Research/fuzzgen/internal/common"
)

// Config is handled by cmd/root.go
func main() {
	common.ConfigureCommandLineLogging()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
