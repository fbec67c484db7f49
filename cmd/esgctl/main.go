package main

import (
	"os"

	"github.com/greenbdg/africaesg/backend/cmd/esgctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
