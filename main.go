package main

import (
	"os"

	"github.com/JPM1118/cimcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
