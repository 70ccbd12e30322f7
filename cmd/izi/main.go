package main

import (
	"os"

	"github.com/iziteam/izi/cmd/izi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
