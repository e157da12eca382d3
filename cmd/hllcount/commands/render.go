package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/clarkduvall/hyperloglog"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an output format other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Report summarizes an estimator and, for count runs, the input it saw.
type Report struct {
	Sources       []string `json:"sources,omitempty"`
	Estimate      uint64   `json:"estimate"`
	Lines         uint64   `json:"lines,omitempty"`
	Skipped       uint64   `json:"skipped,omitempty"`
	Registers     uint32   `json:"registers"`
	ZeroRegisters int      `json:"zero_registers"`
	Shards        int      `json:"shards,omitempty"`
	Precision     uint8    `json:"precision"`
	MaxRank       uint8    `json:"max_rank"`
}

func newReport(h *hyperloglog.HyperLogLog) Report {
	r := Report{
		Estimate:  h.Count(),
		Registers: h.RegisterCount(),
		Precision: h.Precision(),
	}

	for _, v := range h.Registers() {
		if v == 0 {
			r.ZeroRegisters++
		}

		r.MaxRank = max(r.MaxRank, v)
	}

	return r
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderReport(w io.Writer, format string, r Report) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Field", "Value"})

	for _, src := range r.Sources {
		tbl.AppendRow(table.Row{"Source", src})
	}

	if r.Lines > 0 {
		tbl.AppendRow(table.Row{"Lines read", humanize.Comma(int64(r.Lines))})
		tbl.AppendRow(table.Row{"Lines skipped", humanize.Comma(int64(r.Skipped))})
	}

	if r.Shards > 0 {
		tbl.AppendRow(table.Row{"Shards", r.Shards})
	}

	tbl.AppendRow(table.Row{"Precision", r.Precision})
	tbl.AppendRow(table.Row{"Registers", humanize.Comma(int64(r.Registers))})
	tbl.AppendRow(table.Row{"Memory", humanize.IBytes(uint64(r.Registers))})
	tbl.AppendRow(table.Row{"Empty registers", humanize.Comma(int64(r.ZeroRegisters))})
	tbl.AppendRow(table.Row{"Max rank", r.MaxRank})
	tbl.AppendFooter(table.Row{"Estimate", humanize.Comma(int64(r.Estimate))})

	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}
