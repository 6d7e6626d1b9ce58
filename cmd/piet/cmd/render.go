package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/piet/pkg/config"
	"github.com/go-drift/piet/pkg/document"
	"github.com/go-drift/piet/pkg/graphics"
	"github.com/go-drift/piet/pkg/model"
	piettest "github.com/go-drift/piet/pkg/testing"
)

// rowHeightPx is the height given to each leaf view when laying out the
// rendered tree for view actions.
const rowHeightPx = 48

type renderOptions struct {
	widthPx  int
	behavior string
	metrics  bool
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Bind a document and print the resulting view tree",
		Long: `Render binds the frame of a document into in-memory views using fake
host providers, then prints the view tree, the debug messages of the bind
and the actions fired while the whole frame is in view.

Exits non-zero when the frame as a whole fails to bind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.widthPx, "width", "w", 0, "Frame width in px (overrides display.widthPx)")
	cmd.Flags().StringVar(&opts.behavior, "debug", "", "Debug behavior: silent, warning, verbose or strict")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print engine metrics after rendering")

	return cmd
}

func (o renderOptions) apply(cfg *config.HostConfig) error {
	if o.widthPx < 0 {
		return fmt.Errorf("--width must not be negative, got %d", o.widthPx)
	}
	if o.widthPx > 0 {
		cfg.Display.WidthPx = o.widthPx
	}
	if o.behavior != "" {
		cfg.Debug.Behavior = o.behavior
	}
	return nil
}

func runRender(out, errOut io.Writer, root *rootFlags, opts renderOptions, docPath string) error {
	doc, err := document.Load(docPath)
	if err != nil {
		return err
	}
	s, err := newSession(root, errOut, opts.apply)
	if err != nil {
		return err
	}

	fa, err := s.manager.NewFrameAdapter(nil, nil)
	if err != nil {
		return err
	}
	defer fa.Release()

	widthPx := s.cfg.Display.WidthPx
	bindErr := fa.BindModel(doc.Frame, doc.SharedStates, widthPx)

	fmt.Fprintf(out, "%s %s %s\n",
		styles.title.Render("Frame"),
		frameName(doc.Frame),
		styles.muted.Render(fmt.Sprintf("(%dpx, density %g, %s)", widthPx, s.cfg.Display.Density, s.cfg.Behavior())))
	printTree(out, fa.View())

	if fa.IsBound() {
		height := piettest.Layout(fa.View(), widthPx, rowHeightPx)
		fa.TriggerViewActions(graphics.RectFromLTWH(0, 0, widthPx, height))
	}
	printActions(out, s.env.Actions.Actions())
	printMessages(out, fa.DebugLogger())

	if opts.metrics {
		if err := printMetrics(out, s.registry); err != nil {
			return err
		}
	}
	if bindErr != nil {
		return fmt.Errorf("frame failed to bind: %w", bindErr)
	}
	return nil
}

func frameName(f *model.Frame) string {
	if f.Tag == "" {
		return "(untagged)"
	}
	return f.Tag
}

func printActions(w io.Writer, actions []piettest.RecordedAction) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintln(w, styles.section.Render("Actions"))
	for _, a := range actions {
		fmt.Fprintf(w, "  %s %s\n", a.Type, a.Action.Name)
	}
}
