// Package main is the entry point for the bokdeok development server.
package main

import (
	"os"

	"github.com/donaldgifford/bokdeok/cmd/bokdeok-devserver/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
