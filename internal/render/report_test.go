package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "modul_praktikum.txt", "Title\nA | B"))

	banner := strings.Repeat("=", 50)
	expected := "Extracted successfully to modul_praktikum.txt\n" +
		"\n" + banner + "\n" +
		"CONTENT:\n" +
		banner + "\n\n" +
		"Title\nA | B\n"
	assert.Equal(t, expected, buf.String())
}

func TestReportEmptyContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "out.txt", ""))
	assert.True(t, strings.HasSuffix(buf.String(), "=\n\n\n"))
}

func TestReportNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "out.txt", "x"))
	assert.NotContains(t, buf.String(), "\x1b[")
}
