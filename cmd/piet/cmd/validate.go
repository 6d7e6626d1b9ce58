package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/piet/pkg/debug"
	"github.com/go-drift/piet/pkg/document"
	pieterrors "github.com/go-drift/piet/pkg/errors"
	"github.com/go-drift/piet/pkg/frame"
)

// errValidationFailed is returned when a document has fatal errors.
var errValidationFailed = errors.New("validation failed")

func newValidateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document without rendering it",
		Long: `Validate parses a document, builds its frame context and instantiates
every inline template invocation with its binding contexts. No views are
created.

Exits non-zero when any fatal error is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), cmd.ErrOrStderr(), root, args[0])
		},
	}
}

type validation struct {
	log       *debug.Logger
	instances int
}

func runValidate(out, errOut io.Writer, root *rootFlags, docPath string) error {
	doc, err := document.Load(docPath)
	if err != nil {
		return err
	}
	s, err := newSession(root, errOut, nil)
	if err != nil {
		return err
	}

	v := validateDocument(s, doc)
	fmt.Fprintf(out, "%s %s %s\n",
		styles.title.Render("Validated"),
		docPath,
		styles.muted.Render(fmt.Sprintf("(version %s, %d template instances)", doc.Version, v.instances)))
	if printMessages(out, v.log) {
		return errValidationFailed
	}
	return nil
}

// validateDocument builds the root context of doc and a template context
// for every binding context of its inline invocations.
func validateDocument(s *session, doc *document.Document) *validation {
	v := &validation{log: debug.NewLogger(s.log)}
	fatal := func(err error) {
		v.log.RecordMessage(debug.SeverityError, pieterrors.CodeOf(err), pieterrors.MessageOf(err))
	}

	helper, err := s.manager.StylesFactory().Get(doc.SharedStates, s.env.MediaQuery())
	if err != nil {
		fatal(err)
		return v
	}
	fc, err := frame.New(doc.Frame, helper, frame.Options{
		DebugBehavior: s.cfg.Behavior(),
		DebugLogger:   v.log,
		ActionHandler: s.env.Actions,
		Providers:     s.env.Providers(),
	})
	if err != nil {
		fatal(err)
		return v
	}
	if _, err := fc.MakeStyleFor(doc.Frame.StyleReferences); err != nil {
		fatal(err)
	}

	for _, inv := range doc.Invocations() {
		tmpl, ok := fc.Template(inv.TemplateID)
		if !ok {
			if err := fc.ReportMessage(debug.SeverityWarning, pieterrors.ErrMissingTemplate,
				fmt.Sprintf("Template not found: %s", inv.TemplateID)); err != nil {
				fatal(err)
			}
			continue
		}
		for _, bc := range inv.BindingContexts {
			tc, err := fc.CreateTemplateContext(tmpl, bc)
			if err != nil {
				fatal(err)
				continue
			}
			v.instances++
			if tmpl.Element == nil {
				continue
			}
			if _, err := tc.MakeStyleFor(tmpl.Element.StyleReferences); err != nil {
				fatal(err)
			}
		}
	}
	return v
}
