package main

import (
	"fmt"
	"os"

	"github.com/shopsense/shopsense/cmd/shopsense/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
