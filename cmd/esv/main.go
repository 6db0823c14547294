package main

import (
	"os"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/cmd/esv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
