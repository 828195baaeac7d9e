package main

import (
	"os"

	"StopLossCowboy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
