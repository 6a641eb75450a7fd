package main

import (
	"os"

	"github.com/Dallionking/goldsim/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
