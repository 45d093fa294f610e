// Package inspect renders the page layout of an open table for humans.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuannm99/novalite/internal/heap"
	"github.com/tuannm99/novalite/internal/storage"
)

type styles struct {
	box      lipgloss.Style
	title    lipgloss.Style
	header   lipgloss.Style
	full     lipgloss.Style
	partial  lipgloss.Style
	resident lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header:   r.NewStyle().Bold(true).Underline(true),
		full:     r.NewStyle().Foreground(lipgloss.Color("10")),
		partial:  r.NewStyle().Foreground(lipgloss.Color("11")),
		resident: r.NewStyle().Foreground(lipgloss.Color("14")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render writes a summary box and one line per live page.
func Render(w io.Writer, st heap.Stats) error {
	s := newStyles(lipgloss.NewRenderer(w))

	livePages := len(st.Pages)
	summary := strings.Join([]string{
		s.title.Render(st.Path),
		fmt.Sprintf("rows      %d / %d", st.NumRows, st.MaxRows),
		fmt.Sprintf("pages     %d / %d (resident %d)", livePages, storage.TableMaxPages, st.Resident),
		fmt.Sprintf("layout    %d B/page, %d B/row, %d rows/page", st.PageSize, st.RowSize, st.RowsPerPage),
		fmt.Sprintf("file      %d B at open", st.FileLength),
	}, "\n")

	var b strings.Builder
	b.WriteString(s.box.Render(summary))
	b.WriteString("\n")

	if livePages == 0 {
		b.WriteString(s.muted.Render("(empty table)"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(s.header.Render(fmt.Sprintf("%6s %9s %7s  %s", "page", "rows", "bytes", "state")))
	b.WriteByte('\n')
	for _, p := range st.Pages {
		fill := s.full
		if p.Rows < st.RowsPerPage {
			fill = s.partial
		}

		state := s.muted.Render("on disk")
		if p.Resident {
			state = s.resident.Render("resident")
		}

		fmt.Fprintf(&b, "%6d %s %7d  %s\n",
			p.PageNum,
			fill.Render(fmt.Sprintf("%4d/%-4d", p.Rows, st.RowsPerPage)),
			p.Bytes,
			state,
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
