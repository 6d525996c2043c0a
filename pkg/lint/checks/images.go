package checks

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/images"
	"github.com/yaklabco/adoclint/pkg/lint"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	imageMacroRE = regexp.MustCompile(`\bimage::?([^\[\s]+)\[`)
	quotedRE     = regexp.MustCompile(`"[^"]*"`)
	attrSplitRE  = regexp.MustCompile(`\s*,\s*`)
	leadingIntRE = regexp.MustCompile(`^\d+`)
)

// ImageChecker reports missing and mis-sized images, and once every document
// has been checked, images nothing referenced.
type ImageChecker struct {
	lint.BaseChecker
}

// NewImageChecker creates the image-references checker.
func NewImageChecker() *ImageChecker {
	return &ImageChecker{
		BaseChecker: lint.NewBaseChecker(
			ImagesID,
			"image-references",
			"Image macros must reference existing images at their real size",
			[]string{"images", "references"},
			config.SeverityError,
		),
	}
}

// Accepts limits the checker to page and partial documents whose names do
// not start with an underscore, and only when an image catalog exists.
func (c *ImageChecker) Accepts(doc *adoc.Document, run *lint.RunState) bool {
	if run == nil || run.Images == nil {
		return false
	}
	logical := "/" + doc.LogicalPath
	if !strings.Contains(logical, "/pages/") && !strings.Contains(logical, "/partials/") {
		return false
	}
	return !strings.HasPrefix(doc.Base(), "_")
}

// imageMacro is one image macro with its attribute list reassembled.
type imageMacro struct {
	target string
	width  int
	height int
}

// Check resolves every image macro in the document.
func (c *ImageChecker) Check(cc *lint.CheckContext) ([]lint.Diagnostic, error) {
	run := cc.Run
	if run == nil || run.Images == nil {
		return nil, nil
	}
	logger := logging.FromContext(cc.Ctx)

	var diags []lint.Diagnostic

	err := cc.Walk(func(line adoc.Line, state adoc.BlockState, _ bool) error {
		if state.Opaque() {
			return nil
		}

		for _, macro := range parseImageMacros(cc.Document, line) {
			if images.IsExternal(macro.target) {
				logger.Debug("skipping external image", logging.FieldPath, macro.target)
				continue
			}

			diag, err := c.checkMacro(cc, line, macro)
			if err != nil {
				return err
			}
			if diag != nil {
				diags = append(diags, *diag)
			}
		}
		return nil
	})
	return diags, err
}

func (c *ImageChecker) checkMacro(cc *lint.CheckContext, line adoc.Line, macro imageMacro) (*lint.Diagnostic, error) {
	build := func(msg string, finding lint.ImageFinding, suggestion string) *lint.Diagnostic {
		diag := lint.NewDiagnosticAt(c.ID(), cc.Document.Path, line.Number, msg).
			WithSeverity(config.SeverityError).
			WithColumn(strings.Index(line.Text, macro.target) + 1).
			WithImage(finding).
			WithSuggestion(suggestion).
			WithSource(line.Text).
			Build()
		return &diag
	}

	resolved, err := images.Resolve(cc.Document.LogicalPath, macro.target)
	if err != nil {
		if !errors.Is(err, images.ErrAbsoluteTarget) {
			return nil, err
		}
		return build(fmt.Sprintf("%s: absolute image paths are not supported", macro.target),
			lint.ImageFinding{Target: macro.target}, ""), nil
	}

	finding := lint.ImageFinding{
		Target:          macro.target,
		Resolved:        resolved,
		SpecifiedWidth:  macro.width,
		SpecifiedHeight: macro.height,
	}

	if !cc.Run.Images.MarkReferenced(resolved) {
		finding.Missing = true
		return build(fmt.Sprintf("%s: missing", macro.target), finding, ""), nil
	}

	// SVG sizes are routinely set to something other than the natural size.
	if strings.EqualFold(path.Ext(resolved), ".svg") || (macro.width <= 0 && macro.height <= 0) {
		return nil, nil
	}
	if cc.Run.Prober == nil {
		return nil, nil
	}

	dims, err := cc.Run.Prober.Probe(resolved)
	if err != nil {
		return nil, err
	}

	actualW, actualH := retinaAdjust(dims, macro.width, macro.height)
	if (macro.width > 0 && actualW != macro.width) || (macro.height > 0 && actualH != macro.height) {
		finding.ActualWidth, finding.ActualHeight = actualW, actualH
		suggestion := "set the size to " +
			sizeString(specifiedOnly(macro.width, actualW), specifiedOnly(macro.height, actualH))
		return build(fmt.Sprintf("%s: size set=%s, img=%dx%d",
			macro.target, sizeString(macro.width, macro.height), actualW, actualH), finding, suggestion), nil
	}
	return nil, nil
}

// Finish reports every image in the catalog that no document referenced.
func (c *ImageChecker) Finish(_ context.Context, run *lint.RunState) ([]lint.Diagnostic, error) {
	if run == nil || run.Images == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, name := range run.Images.Unreferenced() {
		diags = append(diags, lint.NewDiagnosticAt(c.ID(), run.Report(name), 0, "image is not referenced").
			WithSeverity(config.SeverityError).
			WithImage(lint.ImageFinding{Resolved: name}).
			Build())
	}
	return diags, nil
}

// parseImageMacros finds every image macro on a line. An attribute list
// without its closing bracket continues on the following lines.
func parseImageMacros(doc *adoc.Document, line adoc.Line) []imageMacro {
	matches := imageMacroRE.FindAllStringSubmatchIndex(line.Text, -1)
	if matches == nil {
		return nil
	}

	macros := make([]imageMacro, 0, len(matches))
	for _, m := range matches {
		attrs := line.Text[m[1]:]
		for next := line.Number; !strings.Contains(attrs, "]") && next < len(doc.Lines); next++ {
			attrs += " " + doc.Lines[next].Text
		}
		if end := strings.Index(attrs, "]"); end >= 0 {
			attrs = attrs[:end]
		}

		macro := imageMacro{target: line.Text[m[2]:m[3]]}
		macro.width, macro.height = parseSize(attrs)
		macros = append(macros, macro)
	}
	return macros
}

// parseSize reads width and height from an attribute list: positionally
// after the alt text, or as named width= and height= attributes.
func parseSize(attrs string) (int, int) {
	fields := attrSplitRE.Split(quotedRE.ReplaceAllString(attrs, `"-"`), -1)

	var width, height int
	if len(fields) > 1 {
		width = leadingInt(fields[1])
	}
	if len(fields) > 2 {
		height = leadingInt(fields[2])
	}

	for _, field := range fields {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(name) {
		case "width":
			width = leadingInt(strings.Trim(value, `"' `))
		case "height":
			height = leadingInt(strings.Trim(value, `"' `))
		}
	}
	return width, height
}

func leadingInt(s string) int {
	n, err := strconv.Atoi(leadingIntRE.FindString(strings.TrimSpace(s)))
	if err != nil {
		return 0
	}
	return n
}

// retinaAdjust halves the actual dimensions when either specified dimension
// is smaller than the actual one, on the assumption the image is a 2x Retina
// asset. Only specified dimensions take part in the decision.
func retinaAdjust(dims images.Dimensions, width, height int) (int, int) {
	actualW, actualH := dims.Width, dims.Height
	if (width > 0 && ceilDiv(actualW, width) > 1) || (height > 0 && ceilDiv(actualH, height) > 1) {
		actualW, actualH = ceilDiv(actualW, 2), ceilDiv(actualH, 2)
	}
	return actualW, actualH
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// specifiedOnly returns actual when the macro set the dimension.
func specifiedOnly(specified, actual int) int {
	if specified <= 0 {
		return 0
	}
	return actual
}

func sizeString(width, height int) string {
	dim := func(n int) string {
		if n <= 0 {
			return "auto"
		}
		return strconv.Itoa(n)
	}
	return dim(width) + "x" + dim(height)
}
