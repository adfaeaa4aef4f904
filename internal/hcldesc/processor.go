package hcldesc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Processor is the default descriptor.ModelProcessor, backed by HCL.
type Processor struct{}

// New returns a Processor.
func New() *Processor {
	return &Processor{}
}

// Read parses src as an HCL descriptor document. With strict=true, a parse
// or decode diagnostic is returned as a Go error, matching the original's
// "malformed input aborts immediately" strict mode. With strict=false, the
// same diagnostics are downgraded to WARNING problems and whatever model
// HCL still decoded is returned, implementing the strict→lenient fallback
// component C3 drives this method through.
func (p *Processor) Read(ctx context.Context, src descriptor.Source, strict bool, locationTracking bool, problems *problem.Collector) (*descriptor.Descriptor, error) {
	log := ctxlog.FromContext(ctx)
	location := src.Location()

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("hcldesc: opening %s: %w", location, err)
	}
	defer rc.Close()

	buf, err := readAll(rc)
	if err != nil {
		return nil, fmt.Errorf("hcldesc: reading %s: %w", location, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(buf, location)
	if diags.HasErrors() {
		if strict {
			return nil, fmt.Errorf("hcldesc: parsing %s: %w", location, diags)
		}
		reportDiagnostics(problems, location, diags)
	}

	var root fileRoot
	decodeDiags := gohcl.DecodeBody(hclFile.Body, nil, &root)
	if decodeDiags.HasErrors() {
		if strict {
			return nil, fmt.Errorf("hcldesc: decoding %s: %w", location, decodeDiags)
		}
		reportDiagnostics(problems, location, decodeDiags)
	}

	if root.Descriptor == nil {
		err := fmt.Errorf("hcldesc: %s: no descriptor block found", location)
		if strict {
			return nil, err
		}
		problems.Add(problem.Problem{Severity: problem.Error, Source: location, Message: err.Error()})
		return &descriptor.Descriptor{}, nil
	}

	d := translateDescriptor(root.Descriptor)
	if locationTracking {
		d.Locations = map[string]*descriptor.InputLocation{
			"": {Source: location},
		}
	}
	log.Debug("hcldesc: read descriptor", "source", location, "modelID", d.ModelID())
	return d, nil
}

// Write serializes d back into an HCL document. Only the fields a
// round-trip through this module's pipeline can produce are emitted;
// hand-authored comments in the original source are not preserved.
func (p *Processor) Write(ctx context.Context, d *descriptor.Descriptor) ([]byte, error) {
	return renderDescriptor(d), nil
}

func readAll(rc descriptor.ReadCloser) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := rc.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return buf, err
		}
		if n == 0 {
			return buf, nil
		}
	}
}

func reportDiagnostics(problems *problem.Collector, source string, diags hcl.Diagnostics) {
	for _, d := range diags {
		loc := &problem.Location{Source: source}
		if d.Subject != nil {
			loc.Line = d.Subject.Start.Line
			loc.Column = d.Subject.Start.Column
		}
		problems.Add(problem.Problem{
			Severity: problem.Warning,
			Source:   source,
			Location: loc,
			Message:  d.Summary + ": " + d.Detail,
		})
	}
}

var _ descriptor.ModelProcessor = (*Processor)(nil)
