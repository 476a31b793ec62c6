package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats reports as aligned text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter. A custom template
// that does not parse is an error.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(f.templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		f.template = tmpl
	}
	return f, nil
}

// Format writes each report as a block of labelled frames.
func (f *PlainFormatter) Format(w io.Writer, reports []Report) error {
	for i, r := range reports {
		if f.template != nil {
			if err := f.template.Execute(w, r); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, f.formatReport(r)); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatReport(r Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %q", r.Variant, r.Title)
	if r.Subtitle != "" {
		fmt.Fprintf(&sb, " / %q", r.Subtitle)
	}
	if r.Icon != "none" {
		fmt.Fprintf(&sb, " [%s]", r.Icon)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "  %-9s %s\n", "host", f.size(r.Host.Width, r.Host.Height))
	f.row(&sb, "frame", &r.Frame)
	f.row(&sb, "title", r.TitleFrame)
	f.row(&sb, "subtitle", r.SubtitleFrame)
	f.row(&sb, "icon", r.IconFrame)
	fmt.Fprintf(&sb, "  %-9s %s in, %s, %s out\n", "timing",
		r.Timing.Enter.Duration(), visible(r.Timing), r.Timing.Exit.Duration())
	return sb.String()
}

func (f *PlainFormatter) row(sb *strings.Builder, label string, b *Box) {
	if b == nil {
		return
	}
	fmt.Fprintf(sb, "  %-9s %s at %s,%s\n", label, f.size(b.Width, b.Height), f.num(b.X), f.num(b.Y))
}

func (f *PlainFormatter) size(w, h float64) string {
	return f.num(w) + "x" + f.num(h)
}

func (f *PlainFormatter) num(v float64) string {
	return humanize.FtoaWithDigits(v, f.opts.Digits)
}

func (f *PlainFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num": f.num,
		"box": func(b *Box) string {
			if b == nil {
				return "-"
			}
			return f.size(b.Width, b.Height) + "@" + f.num(b.X) + "," + f.num(b.Y)
		},
	}
}

func visible(t Timing) string {
	if t.Sticky {
		return "until tapped"
	}
	return t.Visible.Duration().String() + " visible"
}
