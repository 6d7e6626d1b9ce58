// Package document reads frames and shared states from YAML.
//
// A document names its format version, the shared states the frame may
// reference and the frame itself:
//
//	version: 1.0.0
//	sharedStates:
//	  - stylesheets:
//	      - id: base
//	        styles:
//	          - id: title
//	            color: "#212121"
//	            font: {size: 20, weight: BOLD}
//	frame:
//	  tag: greeting
//	  stylesheets: {ids: [base]}
//	  contents:
//	    - element:
//	        styleReferences: [title]
//	        text: Hello
//
// Union fields use one key per variant; setting two is an error. Errors
// name the path of the offending node, e.g. frame.contents[0].element.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/piet/pkg/model"
)

// SupportedMajor is the document format major version this package reads.
const SupportedMajor = "v1"

// Document is a parsed document.
type Document struct {
	Version      string
	SharedStates []*model.SharedState
	Frame        *model.Frame
}

// ParseError reports an invalid node.
type ParseError struct {
	Path string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document. Unknown top-level keys are rejected.
func Parse(data []byte) (*Document, error) {
	var d documentDTO
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Msg: "document is empty"}
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if err := checkVersion(d.Version); err != nil {
		return nil, err
	}
	doc := &Document{Version: d.Version}
	for i, sd := range d.SharedStates {
		s, err := convertSharedState(path("sharedStates").at(i), sd)
		if err != nil {
			return nil, err
		}
		doc.SharedStates = append(doc.SharedStates, s)
	}
	if d.Frame == nil {
		return nil, path("frame").errorf("frame is required")
	}
	f, err := convertFrame("frame", d.Frame)
	if err != nil {
		return nil, err
	}
	doc.Frame = f
	return doc, nil
}

func checkVersion(v string) error {
	p := path("version")
	if strings.TrimSpace(v) == "" {
		return p.errorf("version is required")
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return p.errorf("%q is not a semantic version", v)
	}
	if major := semver.Major(canonical); major != SupportedMajor {
		return p.errorf("unsupported major version %s (want %s)", major, SupportedMajor)
	}
	return nil
}

// Invocations returns every inline template invocation reachable from the
// frame's contents, in document order. Invocations nested in binding
// values are included.
func (d *Document) Invocations() []*model.TemplateInvocation {
	var out []*model.TemplateInvocation
	for _, c := range d.Frame.Contents {
		out = collectInvocations(c, out)
	}
	return out
}

func collectInvocations(c model.Content, out []*model.TemplateInvocation) []*model.TemplateInvocation {
	switch v := c.Value.(type) {
	case model.ElementContent:
		out = collectElementInvocations(v.Element, out)
	case model.TemplateInvocationContent:
		out = append(out, v.Invocation)
		for _, bc := range v.Invocation.BindingContexts {
			for _, bv := range bc.BindingValues {
				if el := bv.Element(); el != nil {
					out = collectElementInvocations(el, out)
				}
				if inv := bv.TemplateInvocation(); inv != nil {
					out = collectInvocations(model.TemplateContentOf(inv), out)
				}
			}
		}
	}
	return out
}

func collectElementInvocations(el *model.Element, out []*model.TemplateInvocation) []*model.TemplateInvocation {
	var contents []model.Content
	switch body := el.Body.(type) {
	case *model.ElementList:
		contents = body.Contents
	case *model.ElementStack:
		contents = body.Contents
	case *model.GridRow:
		for _, cell := range body.Cells {
			contents = append(contents, cell.Content)
		}
	}
	for _, c := range contents {
		out = collectInvocations(c, out)
	}
	return out
}
