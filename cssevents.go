// Package cssevents parses CSS fragments into a flat stream of events
// instead of a syntax tree.
//
// A whole stylesheet reports imports, selector fragments, rule boundaries
// and property/value pairs, in document order:
//
//	var rec cssevents.Recorder
//	err := cssevents.Parse(".a .b{fill:#fff;}", &rec, false)
//	// rec.Events: selector ".a", selector ".b", start-rule,
//	//             property "fill", value "#fff", end-rule
//
// The content of a style attribute is parsed with inDeclarationBlock set,
// which yields only property and value events:
//
//	err := cssevents.Parse("fill:red;stroke:blue", handler, true)
//
// Every error returned by Parse is a *SyntaxError and matches
// ErrMalformed with errors.Is. Events already delivered before the error
// are not retracted.
//
// # Rules and SVG styling
//
// Collector groups the events into rules with "!important" split off, and
// Applier resolves an SVG document's stylesheets into presentation
// attributes:
//
//	stats, err := cssevents.NewApplier(cssevents.WithStrip(true)).ApplySVG(in, out)
//
// # CLI Tool
//
//	go install github.com/yacobolo/cssevents/cmd/cssevents@latest
package cssevents

import (
	"github.com/yacobolo/cssevents/internal/cssparse"
	"github.com/yacobolo/cssevents/internal/stylesheet"
)

// ErrMalformed is matched by every error Parse returns.
var ErrMalformed = cssparse.ErrMalformed

// DefaultMaxNesting bounds how many blocks may be open at once.
const DefaultMaxNesting = cssparse.DefaultMaxNesting

type (
	// Handler receives parse events synchronously and in document order.
	Handler = cssparse.Handler
	// SyntaxError describes why a fragment was rejected and where.
	SyntaxError = cssparse.SyntaxError
	// Parser holds parse options and may be shared between goroutines.
	Parser = cssparse.Parser
	// Option configures a Parser.
	Option = cssparse.Option
	// Recorder is a Handler that keeps every event it receives.
	Recorder = cssparse.Recorder
	// Event is one recorded Handler call.
	Event = cssparse.Event
	// EventKind identifies which Handler method produced an Event.
	EventKind = cssparse.EventKind

	// Collector is a Handler that groups events into a Sheet.
	Collector = stylesheet.Collector
	Sheet     = stylesheet.Sheet
	Rule      = stylesheet.Rule
	// Declaration is one property/value pair with "!important" split off.
	Declaration = stylesheet.Declaration

	// Applier writes stylesheet and inline styles of an SVG document onto
	// its elements as presentation attributes.
	Applier        = stylesheet.Applier
	ApplyOption    = stylesheet.ApplyOption
	ApplyStats     = stylesheet.ApplyStats
	ImportResolver = stylesheet.ImportResolver
)

// Event kinds, one per Handler method.
const (
	EventImport    = cssparse.EventImport
	EventStartRule = cssparse.EventStartRule
	EventSelector  = cssparse.EventSelector
	EventProperty  = cssparse.EventProperty
	EventValue     = cssparse.EventValue
	EventEndRule   = cssparse.EventEndRule
)

// Parse reports the structure of text to h using the default options.
// When inDeclarationBlock is true text is treated as the body of a rule.
func Parse(text string, h Handler, inDeclarationBlock bool) error {
	return cssparse.Parse(text, h, inDeclarationBlock)
}

// New returns a Parser with the given options applied.
func New(opts ...Option) *Parser {
	return cssparse.New(opts...)
}

// WithMaxNesting sets the block nesting limit. Zero or less removes it.
func WithMaxNesting(n int) Option {
	return cssparse.WithMaxNesting(n)
}

// MultiHandler fans every event out to hs, in order.
func MultiHandler(hs ...Handler) Handler {
	return cssparse.MultiHandler(hs...)
}

// ParseSheet parses a stylesheet, or a declaration block when
// inDeclarationBlock is set, and returns the collected rules.
func ParseSheet(text string, inDeclarationBlock bool) (*Sheet, error) {
	var c Collector
	if err := Parse(text, &c, inDeclarationBlock); err != nil {
		return nil, err
	}
	return &c.Sheet, nil
}

// NewApplier returns an Applier with the given options.
func NewApplier(opts ...ApplyOption) *Applier {
	return stylesheet.NewApplier(opts...)
}

// Applier options.
var (
	WithLogger         = stylesheet.WithLogger
	WithParser         = stylesheet.WithParser
	WithImportResolver = stylesheet.WithImportResolver
	WithStrip          = stylesheet.WithStrip
	WithKeepGoing      = stylesheet.WithKeepGoing
	DirResolver        = stylesheet.DirResolver
)
