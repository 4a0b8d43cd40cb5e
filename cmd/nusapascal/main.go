package main

import (
	"os"

	"github.com/nusapascal/nusapascal/cmd/nusapascal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
