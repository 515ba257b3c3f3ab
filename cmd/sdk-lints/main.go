package main

import (
	"os"

	"github.com/ariel-frischer/sdk-lints/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
