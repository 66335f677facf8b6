// Package main is the entry point for the bokdeok CLI client.
package main

import (
	"github.com/donaldgifford/bokdeok/cmd/bokdeok/cmd"
)

func main() {
	cmd.Execute()
}
