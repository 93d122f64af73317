package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/theme"
)

// RenderCalls renders a transaction's call list as syntax-highlighted JSON.
// This is what the recap step shows so the user sees exactly what will be
// signed.
func RenderCalls(tx *sdk.Transaction) string {
	data, err := json.MarshalIndent(tx.Calls, "", "  ")
	if err != nil {
		return "(unrenderable transaction)"
	}
	return highlightJSON(string(data))
}

// highlightJSON runs a JSON source through chroma with true color output.
// Falls back to the raw source when anything in the chain fails.
func highlightJSON(source string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}

	baseStyle := styles.Get("monokai")
	if baseStyle == nil {
		baseStyle = styles.Fallback
	}

	// Transform all token backgrounds to match the modal surface color.
	// Without this, monokai's #272822 clashes with the panel background.
	bgColour := chroma.MustParseColour(theme.Current().BgSurface0)
	style, err := baseStyle.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
		entry.Background = bgColour
		return entry
	}).Build()
	if err != nil {
		style = baseStyle
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}

	return strings.TrimRight(buf.String(), "\n")
}
