package render

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// BannerWidth is the width of the separator printed around the content label.
const BannerWidth = 50

// Report prints the confirmation line, the content banner and the content.
// Decorations are coloured only when w is a terminal; content never is.
func Report(w io.Writer, outputName, content string) error {
	colored := isTerminal(w)
	success := paint(colored, color.FgGreen, color.Bold)
	accent := paint(colored, color.FgCyan)

	banner := accent(strings.Repeat("=", BannerWidth))

	var sb strings.Builder
	sb.WriteString(success("Extracted successfully to " + outputName))
	sb.WriteString("\n\n")
	sb.WriteString(banner)
	sb.WriteString("\n")
	sb.WriteString(accent("CONTENT:"))
	sb.WriteString("\n")
	sb.WriteString(banner)
	sb.WriteString("\n\n")
	sb.WriteString(content)
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func paint(enabled bool, attrs ...color.Attribute) func(string) string {
	if !enabled {
		return func(s string) string { return s }
	}
	c := color.New(attrs...)
	c.EnableColor()
	return func(s string) string { return c.Sprint(s) }
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
