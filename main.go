package main

import (
	"os"

	"github.com/buildtrack/migration-validator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
