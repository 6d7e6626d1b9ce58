package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/piet/pkg/config"
)

const greetingDoc = `
version: 1.0.0
sharedStates:
  - templates:
      - id: row
        element:
          text: {binding: label}
frame:
  tag: greeting
  contents:
    - element:
        text: Hello
        actions:
          onView: [{proportion: 0.5, action: seen}]
    - templateInvocation:
        templateId: row
        bindingContexts:
          - - {id: label, text: first}
          - - {id: label, text: second}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })
	Version = "1.2.3"

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version 1.2.3")
}

func TestRenderPrintsTreeAndActions(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", greetingDoc)

	out, err := run(t, "render", doc, "--width", "320", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "greeting")
	assert.Contains(t, out, "(320px, density 1, silent)")
	assert.Contains(t, out, `text="Hello"`)
	assert.Contains(t, out, `text="first"`)
	assert.Contains(t, out, `text="second"`)
	assert.Contains(t, out, "VIEW seen")
	assert.Contains(t, out, "No messages")
	assert.Contains(t, out, `piet_frame_binds_total{result="ok"} 1`)
}

func TestRenderReportsSlotMessages(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", `
version: 1.0.0
frame:
  contents:
    - templateInvocation: {templateId: nope, bindingContexts: [[]]}
    - element: {text: still here}
`)
	out, err := run(t, "render", doc, "--debug", "verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "(untagged)")
	assert.Contains(t, out, "ERR_MISSING_TEMPLATE: Template not found: nope")
	assert.Contains(t, out, `text="still here"`)
}

func TestRenderFrameFailure(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", `
version: 1.0.0
sharedStates:
  - templates: [{id: row, element: {text: a}}]
frame:
  templates: [{id: row, element: {text: b}}]
`)
	out, err := run(t, "render", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame failed to bind")
	assert.Contains(t, out, "ERR_DUPLICATE_TEMPLATE: Template key 'row' already defined")
}

func TestRenderUsesConfig(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", greetingDoc)
	cfg := writeTemp(t, "host.toml", "[display]\nwidthPx = 720\ndensity = 2.0\n\n[debug]\nbehavior = \"warning\"\n")

	out, err := run(t, "render", doc, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "(720px, density 2, warning)")
}

func TestRenderRejectsBadOverrides(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", greetingDoc)

	_, err := run(t, "render", doc, "--debug", "loud")
	var ve *config.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "debug.behavior", ve.Field)

	_, err = run(t, "render", doc, "--width=-5")
	assert.ErrorContains(t, err, "--width must not be negative")
}

func TestRenderDocumentErrors(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", "version: 3.0.0\nframe: {}\n")
	_, err := run(t, "render", doc)
	assert.ErrorContains(t, err, "unsupported major version v3")

	_, err = run(t, "render")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", greetingDoc)

	out, err := run(t, "validate", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "(version 1.0.0, 2 template instances)")
	assert.Contains(t, out, "No messages")
}

func TestValidateFailures(t *testing.T) {
	doc := writeTemp(t, "doc.yaml", `
version: 1.0.0
sharedStates:
  - templates: [{id: row, element: {text: a}}]
frame:
  templates: [{id: row, element: {text: b}}]
`)
	out, err := run(t, "validate", doc)
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "ERR_DUPLICATE_TEMPLATE")

	doc = writeTemp(t, "missing.yaml", `
version: 1.0.0
frame:
  contents:
    - templateInvocation: {templateId: nope, bindingContexts: [[]]}
`)
	out, err = run(t, "validate", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "Template not found: nope")
}
