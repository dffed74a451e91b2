package main

import (
	"os"

	"github.com/tallerix/scheduling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
