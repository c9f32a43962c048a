package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/yacobolo/cssevents/internal/cssparse"
)

// ErrSkipImport tells the Applier to ignore an @import target.
var ErrSkipImport = errors.New("import skipped")

// ImportResolver returns the stylesheet text an @import target refers to.
type ImportResolver func(target string) (string, error)

// DirResolver resolves @import targets as files relative to dir. Targets
// with a URL scheme are skipped.
func DirResolver(dir string) ImportResolver {
	return func(target string) (string, error) {
		if strings.Contains(target, "://") || strings.HasPrefix(target, "data:") {
			return "", ErrSkipImport
		}
		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, target)
		}
		// #nosec G304 - import targets come from the document being converted
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read import: %w", err)
		}
		return string(data), nil
	}
}

// ApplyStats describes what one Apply call did.
type ApplyStats struct {
	StyleElements    int
	Rules            int
	SkippedSelectors int
	InlineStyles     int
	SkippedInline    int
	StyledNodes      int
}

// Applier resolves stylesheet and inline styles of an SVG document into
// presentation attributes on its elements.
type Applier struct {
	log       *zap.Logger
	parser    *cssparse.Parser
	resolve   ImportResolver
	strip     bool
	keepGoing bool
}

// ApplyOption configures an Applier.
type ApplyOption func(*Applier)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.Logger) ApplyOption {
	return func(a *Applier) {
		if log == nil {
			log = zap.NewNop()
		}
		a.log = log.Named("apply")
	}
}

// WithParser sets the parser used for every fragment.
func WithParser(p *cssparse.Parser) ApplyOption {
	return func(a *Applier) { a.parser = p }
}

// WithImportResolver enables following @import targets.
func WithImportResolver(r ImportResolver) ApplyOption {
	return func(a *Applier) { a.resolve = r }
}

// WithStrip removes <style> elements and style attributes after applying.
func WithStrip(strip bool) ApplyOption {
	return func(a *Applier) { a.strip = strip }
}

// WithKeepGoing skips malformed style attributes instead of failing.
func WithKeepGoing(keepGoing bool) ApplyOption {
	return func(a *Applier) { a.keepGoing = keepGoing }
}

// NewApplier returns an Applier with the given options.
func NewApplier(opts ...ApplyOption) *Applier {
	a := &Applier{
		log:    zap.NewNop(),
		parser: cssparse.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ApplySVG reads an SVG document from r, applies its styles and writes the
// first <svg> element to w.
func (a *Applier) ApplySVG(r io.Reader, w io.Writer) (ApplyStats, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ApplyStats{}, fmt.Errorf("read svg: %w", err)
	}
	stats, err := a.ApplyDocument(doc)
	if err != nil {
		return stats, err
	}

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return stats, errors.New("no <svg> element found")
	}
	out, err := goquery.OuterHtml(root)
	if err != nil {
		return stats, fmt.Errorf("render svg: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return stats, fmt.Errorf("write svg: %w", err)
	}
	return stats, nil
}

// ApplyDocument annotates doc in place.
func (a *Applier) ApplyDocument(doc *goquery.Document) (ApplyStats, error) {
	var stats ApplyStats

	styles := doc.Find("style")
	stats.StyleElements = styles.Length()

	var text strings.Builder
	styles.Each(func(_ int, s *goquery.Selection) {
		text.WriteString(s.Text())
		text.WriteByte('\n')
	})
	sheet, err := a.loadSheet(text.String(), make(map[string]bool))
	if err != nil {
		return stats, fmt.Errorf("style element: %w", err)
	}
	stats.Rules = len(sheet.Rules)

	computed := newComputedStyles()
	for _, rule := range sheet.Rules {
		for _, group := range rule.Selectors {
			matcher, err := cascadia.Compile(group)
			if err != nil {
				a.log.Debug("skipping selector", zap.String("selector", group), zap.Error(err))
				stats.SkippedSelectors++
				continue
			}
			for _, n := range doc.FindMatcher(matcher).Nodes {
				computed.apply(n, rule.Declarations)
			}
		}
	}

	var inlineErr error
	doc.Find("[style]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		c := &Collector{}
		if err := a.parser.Parse(style, c, true); err != nil {
			if !a.keepGoing {
				inlineErr = fmt.Errorf("style attribute of <%s>: %w", goquery.NodeName(s), err)
				return false
			}
			a.log.Warn("skipping malformed style attribute",
				zap.String("element", goquery.NodeName(s)), zap.Error(err))
			stats.SkippedInline++
			return true
		}
		stats.InlineStyles++
		computed.apply(s.Nodes[0], c.Sheet.Inline)
		if a.strip {
			s.RemoveAttr("style")
		}
		return true
	})
	if inlineErr != nil {
		return stats, inlineErr
	}

	computed.write()
	stats.StyledNodes = len(computed.order)
	if a.strip {
		styles.Remove()
	}

	a.log.Debug("applied styles",
		zap.Int("rules", stats.Rules),
		zap.Int("inline", stats.InlineStyles),
		zap.Int("nodes", stats.StyledNodes))
	return stats, nil
}

// loadSheet parses css and, when a resolver is set, prepends the rules of
// its imports. seen guards against import cycles.
func (a *Applier) loadSheet(css string, seen map[string]bool) (*Sheet, error) {
	c := &Collector{}
	if err := a.parser.Parse(css, c, false); err != nil {
		return nil, err
	}
	if a.resolve == nil || len(c.Sheet.Imports) == 0 {
		return &c.Sheet, nil
	}

	merged := &Sheet{Imports: c.Sheet.Imports}
	for _, imp := range c.Sheet.Imports {
		target := ImportPath(imp)
		if target == "" || seen[target] {
			a.log.Debug("skipping import", zap.String("import", imp))
			continue
		}
		seen[target] = true

		text, err := a.resolve(target)
		if errors.Is(err, ErrSkipImport) {
			a.log.Debug("skipping import", zap.String("target", target))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", target, err)
		}
		sub, err := a.loadSheet(text, seen)
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", target, err)
		}
		merged.Rules = append(merged.Rules, sub.Rules...)
	}
	merged.Rules = append(merged.Rules, c.Sheet.Rules...)
	return merged, nil
}

// computedStyles is the per-node result of the cascade, in the order nodes
// and properties were first styled.
type computedStyles struct {
	order []*html.Node
	props map[*html.Node]*nodeStyle
}

type nodeStyle struct {
	names []string
	decls map[string]Declaration
}

func newComputedStyles() *computedStyles {
	return &computedStyles{props: make(map[*html.Node]*nodeStyle)}
}

// apply layers decls over what n already has. A later declaration wins
// unless the earlier one is important and the later one is not.
func (c *computedStyles) apply(n *html.Node, decls []Declaration) {
	if len(decls) == 0 {
		return
	}
	ns, ok := c.props[n]
	if !ok {
		ns = &nodeStyle{decls: make(map[string]Declaration)}
		c.props[n] = ns
		c.order = append(c.order, n)
	}
	for _, d := range decls {
		prev, seen := ns.decls[d.Property]
		if seen && prev.Important && !d.Important {
			continue
		}
		if !seen {
			ns.names = append(ns.names, d.Property)
		}
		ns.decls[d.Property] = d
	}
}

func (c *computedStyles) write() {
	for _, n := range c.order {
		ns := c.props[n]
		for _, name := range ns.names {
			setAttr(n, name, ns.decls[name].Value)
		}
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
