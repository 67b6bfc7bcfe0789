package printing

import (
	"bytes"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	invapp "github.com/stockroom/backend/internal/application/inventory"
)

const labelHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{ .Barcode }}</title>
<style>
  @page { margin: 0; }
  body { margin: 0; font-family: "DejaVu Sans Mono", monospace; text-align: center; }
  .kind { font-size: 8pt; letter-spacing: 0.1em; }
  .name { font-size: 11pt; font-weight: bold; overflow: hidden; white-space: nowrap; }
  .bars { height: 0.45in; margin: 2pt auto; display: flex; justify-content: center; }
  .bars span { display: inline-block; height: 100%; background: #000; }
  .code { font-size: 10pt; }
</style>
</head>
<body>
  <div class="kind">{{ upper .Kind }}</div>
  <div class="name">{{ title .Name }}</div>
  <div class="bars">{{ range bars .Barcode }}<span style="width: {{ . }}pt; margin-right: 1pt"></span>{{ end }}</div>
  <div class="code">{{ .Barcode }}</div>
</body>
</html>`

// LabelTemplate renders a label as a standalone HTML page
type LabelTemplate struct {
	tmpl *template.Template
}

// NewLabelTemplate parses the label layout
func NewLabelTemplate() *LabelTemplate {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"title": titleCase,
		"bars":  barWidths,
	}
	return &LabelTemplate{tmpl: template.Must(template.New("label").Funcs(funcMap).Parse(labelHTML))}
}

// Render returns the HTML for label
func (t *LabelTemplate) Render(label invapp.Label) (string, error) {
	if strings.TrimSpace(label.Barcode) == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "label has no barcode", nil)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, label); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to render label", err)
	}
	return buf.String(), nil
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// barWidths maps each digit to a pair of bar widths in points
func barWidths(code string) []float64 {
	widths := make([]float64, 0, len(code)*2)
	for _, r := range code {
		if r < '0' || r > '9' {
			continue
		}
		d := float64(r - '0')
		widths = append(widths, 0.75+0.25*float64(int(d)%3), 1+0.25*float64(int(d)/3))
	}
	return widths
}
