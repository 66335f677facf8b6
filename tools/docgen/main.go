// Package main generates CLI reference documentation from the bokdeok
// command tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/bokdeok/cmd/bokdeok/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	manpages := flag.Bool("man", false, "also generate man pages under <output>/man")
	flag.Parse()

	if err := generate(*output, *manpages); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func generate(dir string, manpages bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, dir); err != nil {
		return fmt.Errorf("generating markdown: %w", err)
	}
	if !manpages {
		return nil
	}

	manDir := dir + "/man"
	if err := os.MkdirAll(manDir, 0o750); err != nil {
		return fmt.Errorf("creating man directory: %w", err)
	}
	header := &doc.GenManHeader{Title: "BOKDEOK", Section: "1", Source: "bokdeok " + cmd.Version}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		return fmt.Errorf("generating man pages: %w", err)
	}
	return nil
}
