package stylesheet

import (
	"strings"

	"github.com/yacobolo/cssevents/internal/cssparse"
)

var _ cssparse.Handler = (*Collector)(nil)

// Collector is a cssparse.Handler that builds a Sheet. The zero value is
// ready to use.
type Collector struct {
	Sheet Sheet

	fragments []string // selector fragments of the rule being read
	property  string
	rule      int // index into Sheet.Rules while inRule
	inRule    bool
}

func (c *Collector) HandleImport(text string) {
	c.Sheet.Imports = append(c.Sheet.Imports, text)
}

func (c *Collector) HandleSelector(text string) {
	c.fragments = append(c.fragments, text)
}

func (c *Collector) StartRule() {
	c.Sheet.Rules = append(c.Sheet.Rules, Rule{Selectors: GroupSelectors(c.fragments)})
	c.rule = len(c.Sheet.Rules) - 1
	c.inRule = true
	c.fragments = c.fragments[:0]
}

func (c *Collector) HandleProperty(name string) {
	c.property = name
}

func (c *Collector) HandleValue(text string) {
	decl := NewDeclaration(c.property, text)
	if !c.inRule {
		c.Sheet.Inline = append(c.Sheet.Inline, decl)
		return
	}
	r := &c.Sheet.Rules[c.rule]
	r.Declarations = append(r.Declarations, decl)
}

func (c *Collector) EndRule() {
	c.inRule = false
}

// GroupSelectors joins selector fragments with single spaces and splits
// the result into comma-separated groups: "g," "path.a" becomes "g" and
// "path.a"; ".a" ".b" stays one group ".a .b".
func GroupSelectors(fragments []string) []string {
	joined := strings.Join(fragments, " ")
	var groups []string
	for _, g := range strings.Split(joined, ",") {
		if g = strings.Join(strings.Fields(g), " "); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
