package gifcheck

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// printer writes indented status lines. Styles come from a renderer bound
// to the destination, so redirected output carries no escape codes.
type printer struct {
	w     io.Writer
	tick  lipgloss.Style
	muted lipgloss.Style
	bad   lipgloss.Style
	good  lipgloss.Style
}

func newPrinter(w io.Writer) printer {
	r := lipgloss.NewRenderer(w)
	return printer{
		w:     w,
		tick:  r.NewStyle().Foreground(lipgloss.Color("2")),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		good:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}

func (p printer) pass(line string) {
	fmt.Fprintf(p.w, "  %s %s\n", line, p.tick.Render("✓"))
}

func (p printer) skip(line string) {
	fmt.Fprintf(p.w, "  %s\n", p.muted.Render(line))
}

// PrintResult writes the final PASS/FAIL line for err.
func PrintResult(w io.Writer, err error) {
	p := newPrinter(w)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", p.bad.Render("FAIL:"), err.Error())
		return
	}
	fmt.Fprintf(w, "%s GIF structure valid\n", p.good.Render("PASS:"))
}
