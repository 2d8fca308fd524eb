package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// previewLen is the number of runes of content shown in lists.
const previewLen = 50

var funcs = template.FuncMap{
	"preview": preview,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

var (
	itemTmpl          = mustTemplate("item", itemTemplate)
	itemsListTmpl     = mustTemplate("items", itemsListTemplate)
	syncResultTmpl    = mustTemplate("sync", syncResultTemplate)
	conflictsListTmpl = mustTemplate("conflicts", conflictsListTemplate)
	statusTmpl        = mustTemplate("status", statusTemplate)
)

// preview shortens content to one line of at most previewLen runes.
func preview(content string) string {
	line, _, cut := strings.Cut(content, "\n")
	if utf8.RuneCountInString(line) > previewLen {
		return string([]rune(line)[:previewLen]) + "..."
	}
	if cut {
		return line + "..."
	}
	return line
}

// render prints v either as JSON or through tmpl.
func (c *Cli) render(tmpl *template.Template, v any) error {
	if c.jsonOutput {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		c.io.Println(string(out))
		return nil
	}
	if err := tmpl.Execute(c.io, v); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
