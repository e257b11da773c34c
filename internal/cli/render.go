// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/multierr"

	"github.com/katalvlaran/gridverify/verify"
)

// render prints a summary of m followed by one per-level table per key.
func render(w io.Writer, m *verify.Model, markdown bool) error {
	c, e, u := m.Strategies()
	if _, err := fmt.Fprintf(w, "%d levels, mesh %q, model %s, error %s, uncertainty %s\n\n",
		m.LevelCount(), m.MeshKey(), c, e, u); err != nil {
		return err
	}

	summary := newTable(markdown)
	summary.AppendHeader(table.Row{"key", "order", "extrapolated", "Fs", "status"})
	for _, key := range m.ResponseKeys() {
		order := "undefined"
		if p, ok := m.Order(key); ok {
			order = num(p)
		}
		if m.IsFallback(key) {
			order += " (finest value)"
		}
		f0, err := m.Extrapolated(key)
		if err != nil {
			return err
		}
		fs := "-"
		if _, err := m.Uncertainty(key); err == nil {
			fs = num(m.UncertaintyFactor(key))
		}
		summary.AppendRow(table.Row{key, order, num(f0), fs, status(m.Status(key))})
	}
	if err := flush(w, summary, markdown); err != nil {
		return err
	}

	sizes := m.MeshSizes()
	for _, key := range m.ResponseKeys() {
		values, err := m.Series().Values(key)
		if err != nil {
			return err
		}
		rel, err := m.RelativeError(key)
		if err != nil {
			return err
		}
		errs, err := m.Error(key)
		if err != nil {
			return err
		}
		unc, uerr := m.Uncertainty(key)

		t := newTable(markdown)
		t.SetTitle(key)
		t.AppendHeader(table.Row{"level", m.MeshKey(), "value", "relative error", fmt.Sprintf("error (%s)", e), "uncertainty"})
		for i := range sizes {
			u := "-"
			if uerr == nil {
				u = num(unc[i])
			}
			t.AppendRow(table.Row{i + 1, num(sizes[i]), num(values[i]), num(rel[i]), num(errs[i]), u})
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := flush(w, t, markdown); err != nil {
			return err
		}
	}

	return nil
}

func newTable(markdown bool) table.Writer {
	t := table.NewWriter()
	if !markdown {
		t.SetStyle(table.StyleLight)
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	return t
}

func flush(w io.Writer, t table.Writer, markdown bool) error {
	out := t.Render()
	if markdown {
		out = t.RenderMarkdown()
	}
	_, err := fmt.Fprintln(w, out)

	return err
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// status renders the diagnostics of one key, one per line.
func status(err error) string {
	if err == nil {
		return color.GreenString("ok")
	}
	var out string
	for i, e := range multierr.Errors(err) {
		if i > 0 {
			out += "\n"
		}
		out += color.YellowString(e.Error())
	}

	return out
}
