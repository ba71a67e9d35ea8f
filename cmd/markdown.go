package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering is not possible (e.g. output is not a terminal).
func printMarkdown(md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
