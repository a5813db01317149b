package main

import (
	"os"

	"github.com/dromero/pitagoritas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
