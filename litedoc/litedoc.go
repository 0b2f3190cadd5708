// Package litedoc parses LiteDoc source into a typed syntax tree. It
// wires together the Source Cursor, Metadata Parser, Block Parser, and
// Inline Parser components behind a single public contract: Parse for
// strict all-or-nothing parsing, and ParseWithRecovery for a Document
// that is always returned alongside whatever diagnostics were recorded.
package litedoc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/blockparse"
	"github.com/nssalian/litedoc-go/internal/cursor"
	"github.com/nssalian/litedoc-go/internal/metaparse"
)

var (
	profileDirectiveRE = regexp.MustCompile(`^@profile\s+(litedoc|md|md-strict)\s*$`)
	modulesDirectiveRE = regexp.MustCompile(`^@modules\s+(.*)$`)
)

// Result is the outcome of ParseWithRecovery: a Document is always
// present; OK is false iff Diagnostics is non-empty.
type Result struct {
	Document    *ast.Document
	Diagnostics []ast.Diagnostic
	OK          bool
}

// Option configures a single Parse/ParseWithRecovery call.
type Option func(*options)

type options struct {
	profile    ast.Profile
	hasProfile bool
	modules    ast.ModuleSet
	hasModules bool
}

// WithProfile sets the profile, overriding one inferred from a filename
// hint. An in-source @profile directive still takes precedence over it.
func WithProfile(p ast.Profile) Option {
	return func(o *options) { o.profile = p; o.hasProfile = true }
}

// WithModules overrides the profile's default module set.
func WithModules(m ast.ModuleSet) Option {
	return func(o *options) { o.modules = m; o.hasModules = true }
}

// WithFilenameHint selects the `md` profile default for a ".md"-suffixed
// name and `litedoc` otherwise — an explicit @profile directive or
// WithProfile still takes precedence.
func WithFilenameHint(name string) Option {
	p := ast.Litedoc
	if strings.HasSuffix(name, ".md") {
		p = ast.Md
	}
	return func(o *options) {
		if !o.hasProfile {
			o.profile = p
			o.hasProfile = true
		}
	}
}

// Parser is a reusable handle carrying a default profile; parsing is
// otherwise stateless between invocations.
type Parser struct {
	Profile ast.Profile
}

// NewParser returns a Parser defaulting to profile.
func NewParser(profile ast.Profile) *Parser {
	return &Parser{Profile: profile}
}

func (p *Parser) Parse(source []byte) (*ast.Document, error) {
	return Parse(source, WithProfile(p.Profile))
}

func (p *Parser) ParseWithRecovery(source []byte) Result {
	return ParseWithRecovery(source, WithProfile(p.Profile))
}

// Parse runs in strict mode: the first recoverable diagnostic is
// returned as an error and parsing stops there. A fatal error (invalid
// UTF-8) is returned immediately without attempting to parse.
func Parse(source []byte, opts ...Option) (*ast.Document, error) {
	doc, diags, err := parse(source, opts...)
	if err != nil {
		return nil, err
	}
	if len(diags) > 0 {
		d := diags[0]
		return nil, fmt.Errorf("litedoc: %s at [%d,%d): %s", d.Kind, d.Span.Start, d.Span.End, d.Message)
	}
	return doc, nil
}

// ParseWithRecovery always returns a Document; OK is false iff
// diagnostics were recorded along the way.
func ParseWithRecovery(source []byte, opts ...Option) Result {
	doc, diags, err := parse(source, opts...)
	if err != nil {
		diags = append(diags, ast.Diagnostic{
			Kind:    ast.DiagUnexpectedEOF,
			Span:    ast.Span{Start: 0, End: len(source)},
			Message: err.Error(),
		})
		return Result{Document: ast.NewDocument(ast.Litedoc, 0, nil, nil, ast.Span{Start: 0, End: len(source)}), Diagnostics: diags, OK: false}
	}
	return Result{Document: doc, Diagnostics: diags, OK: len(diags) == 0}
}

// parse is the shared implementation. The only fatal condition it
// recognizes is invalid UTF-8 in source; everything else is captured as
// a recoverable diagnostic so ParseWithRecovery never fails and Parse's
// strict-mode error carries full diagnostic detail.
func parse(source []byte, opts ...Option) (*ast.Document, []ast.Diagnostic, error) {
	if !utf8.Valid(source) {
		return nil, nil, fmt.Errorf("litedoc: source is not valid UTF-8")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c := cursor.New(source)
	docStart := c.Offset()

	var diags []ast.Diagnostic
	var meta *ast.Metadata

	c.SkipBlankLines()
	if metaparse.Triggered(c) {
		m, mdiags := metaparse.Parse(c)
		meta = m
		diags = append(diags, mdiags...)
	}

	profile := o.profile
	if !o.hasProfile {
		profile = ast.Litedoc
	}

	c.SkipBlankLines()
	if m := profileDirectiveRE.FindSubmatch(c.PeekLine()); m != nil {
		if p, ok := directiveProfile(string(m[1])); ok {
			profile = p
			c.ConsumeLine()
		}
	}

	modules := ast.DefaultModules(profile)
	if o.hasModules {
		modules = o.modules
	}

	c.SkipBlankLines()
	if m := modulesDirectiveRE.FindSubmatch(c.PeekLine()); m != nil {
		names := strings.Split(string(m[1]), ",")
		lineStart := c.Offset()
		c.ConsumeLine()
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			mod, ok := ast.ParseModule(n)
			if !ok {
				diags = append(diags, ast.Diagnostic{
					Kind:    ast.DiagUnknownModule,
					Span:    c.Mint(lineStart),
					Message: fmt.Sprintf("unknown module %q", n),
				})
				continue
			}
			modules = modules.With(mod)
		}
	}

	// md-strict is the one profile that never runs any module, no matter
	// what an explicit @modules directive (or WithModules override) asks
	// for — in particular HTML stays off.
	if profile == ast.MdStrict {
		modules = 0
	}

	blocks, bdiags := blockparse.Parse(c, profile, modules, nil)
	diags = append(diags, bdiags...)

	doc := ast.NewDocument(profile, modules, meta, blocks, c.Mint(docStart))
	return doc, diags, nil
}

func directiveProfile(name string) (ast.Profile, bool) {
	switch name {
	case "litedoc":
		return ast.Litedoc, true
	case "md":
		return ast.Md, true
	case "md-strict":
		return ast.MdStrict, true
	}
	return "", false
}
