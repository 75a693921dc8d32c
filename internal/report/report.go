// Package report renders a calculation summary as the shareable HTML document
// users export from the app.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/load"
)

//go:embed report.html
var reportHTML string

// Meta identifies the document. An empty Title falls back to the room's label.
type Meta struct {
	Room  domain.RoomType
	Title string
}

type Formatter struct {
	tmpl *template.Template
	// Now stamps the generation date.
	Now func() time.Time
}

func New() *Formatter {
	funcMap := template.FuncMap{
		"fixed":   fixed,
		"percent": func(v float64) string { return fixed(1, v*100) + "%" },
		"sub":     func(a, b float64) float64 { return a - b },
		"row":     row,
	}
	return &Formatter{
		tmpl: template.Must(template.New("report").Funcs(funcMap).Parse(reportHTML)),
		Now:  time.Now,
	}
}

type view struct {
	Title     string
	Generated string
	S         load.Summary
}

// Render produces the report document. Sections are fixed; optional lines
// (pull-down or batch time, heater load, daily energy, SHR) are left out when
// the summary carries no value for them.
func (f *Formatter) Render(meta Meta, s load.Summary) (string, error) {
	title := meta.Title
	if title == "" {
		room := meta.Room
		if room == "" {
			room = s.Room
		}
		title = room.Title()
	}

	var buf bytes.Buffer
	err := f.tmpl.Execute(&buf, view{
		Title:     title,
		Generated: f.Now().Format("2006-01-02"),
		S:         s,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", title, err)
	}
	return buf.String(), nil
}

func fixed(prec int, v float64) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func row(label, value, unit string) template.HTML {
	if unit != "" {
		value += " " + unit
	}
	return template.HTML(fmt.Sprintf(
		`<div class="data-row"><span class="data-label">%s:</span><span class="data-value">%s</span></div>`,
		template.HTMLEscapeString(label), template.HTMLEscapeString(value),
	))
}
