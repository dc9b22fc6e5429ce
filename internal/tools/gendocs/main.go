package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra/doc"
	"github.com/ygelfand/kogrid/cmd"
)

func main() {
	outDir := flag.String("out", filepath.Join("docs", "cli"), "directory to write the markdown pages to")
	flag.Parse()

	if err := os.RemoveAll(*outDir); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	root := cmd.GetRootCmd()
	root.DisableAutoGenTag = true

	frontMatter := func(filename string) string {
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return fmt.Sprintf("---\ntitle: %q\n---\n\n", strings.ReplaceAll(name, "_", " "))
	}
	link := func(name string) string {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	if err := doc.GenMarkdownTreeCustom(root, *outDir, frontMatter, link); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Generated CLI documentation in %s\n", *outDir)
}
