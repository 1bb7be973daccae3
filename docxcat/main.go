package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanpama/docxtext"
)

const (
	defaultInput  = "Modul_CW6552021557_Praktikum_Advanced_Network_Security_and_Protocols.docx"
	defaultOutput = "modul_praktikum.txt"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("extraction failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "docxcat [input.docx [output.txt]]",
		Short: "Extract paragraph and table text from a Word document",
		Long: `docxcat writes the text of a .docx document to a plain text file and prints it.

Paragraphs come first, in document order, followed by one line per table row
with the row's non-blank cells joined by " | ".`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := defaultInput, defaultOutput
			if len(args) > 0 {
				input = args[0]
			}
			if len(args) > 1 {
				output = args[1]
			}

			lines, err := docxtext.Convert(input, output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			logger.Debug("conversion finished", "input", input, "output", output, "lines", len(lines))
			return nil
		},
	}
}
