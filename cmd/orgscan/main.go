package main

import (
	"fmt"
	"os"

	"github.com/sonumahanty/Swiss-Re/cmd/orgscan/commands"
)

func main() {
	err := commands.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(commands.ExitCode(err))
}
