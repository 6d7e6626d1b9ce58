package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/piet/pkg/debug"
	"github.com/go-drift/piet/pkg/platform"
	piettest "github.com/go-drift/piet/pkg/testing"
)

var styles = struct {
	title   lipgloss.Style
	section lipgloss.Style
	node    lipgloss.Style
	prop    lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	ok      lipgloss.Style
	muted   lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
	section: lipgloss.NewStyle().Bold(true).Underline(true),
	node:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	prop:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	muted:   lipgloss.NewStyle().Faint(true),
}

// printTree prints the view tree under root.
func printTree(w io.Writer, root platform.View) {
	snap := piettest.CaptureSnapshot(root)
	if snap.ViewTree == nil {
		return
	}
	fmt.Fprintln(w, buildTree(snap.ViewTree).String())
}

func buildTree(n *piettest.ViewNode) *tree.Tree {
	t := tree.New().Root(nodeLabel(n))
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(nodeLabel(c))
			continue
		}
		t.Child(buildTree(c))
	}
	return t
}

func nodeLabel(n *piettest.ViewNode) string {
	var b strings.Builder
	b.WriteString(styles.node.Render(n.ID))
	if n.Visibility != "" {
		b.WriteString(" " + styles.muted.Render(n.Visibility))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		b.WriteString(" " + styles.prop.Render(fmt.Sprintf("%s=%v", k, quoteString(n.Properties[k]))))
	}
	return b.String()
}

func quoteString(v any) any {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return v
}

// printMessages prints the recorded messages, errors first, and reports
// whether any was an error.
func printMessages(w io.Writer, log *debug.Logger) bool {
	errs := log.Messages(debug.SeverityError)
	warns := log.Messages(debug.SeverityWarning)
	if len(errs)+len(warns) == 0 {
		fmt.Fprintln(w, styles.ok.Render("No messages"))
		return false
	}
	fmt.Fprintln(w, styles.section.Render("Messages"))
	for _, m := range errs {
		fmt.Fprintf(w, "  %s %s: %s\n", styles.err.Render(m.Severity.String()), m.Code, m.Text)
	}
	for _, m := range warns {
		fmt.Fprintf(w, "  %s %s: %s\n", styles.warn.Render(m.Severity.String()), m.Code, m.Text)
	}
	return len(errs) > 0
}

// printMetrics prints the counter values gathered from reg.
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, styles.section.Render("Metrics"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "  %s %v\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(w, "  %s_count %d\n", name, m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}
