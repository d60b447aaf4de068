package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal on stdout. The raw markdown is
// printed if it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// writeMarkdown prints markdown on the terminal, or writes it raw into the file
// 'name' if not empty.
func writeMarkdown(name, md string) error {
	if name == "" {
		printMarkdown(md)
		return nil
	}
	return os.WriteFile(name, []byte(md), 0644)
}
