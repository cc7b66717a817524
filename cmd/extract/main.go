package main

import (
	"os"

	"steam-extract/cmd/extract/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
