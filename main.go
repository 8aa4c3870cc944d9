package main

import (
	"os"

	"github.com/cogniwise/cogniwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
