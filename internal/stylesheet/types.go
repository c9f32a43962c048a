// Package stylesheet collects cssparse events into rules and applies them
// to SVG documents as presentation attributes.
package stylesheet

// Declaration is one property/value pair with "!important" split off.
type Declaration struct {
	Property  string `json:"property"`
	Value     string `json:"value"`
	Important bool   `json:"important,omitempty"`
}

// Rule is a rule set: its selector groups and declarations in order.
type Rule struct {
	Selectors    []string      `json:"selectors"`
	Declarations []Declaration `json:"declarations"`
}

// Sheet is everything collected from one parse.
type Sheet struct {
	Imports []string      `json:"imports,omitempty"`
	Rules   []Rule        `json:"rules,omitempty"`
	Inline  []Declaration `json:"inline,omitempty"` // declarations outside any rule
}

// Counts summarizes a Sheet.
type Counts struct {
	Rules        int
	Declarations int
	Imports      int
}

// Counts returns rule, declaration and import totals.
func (s *Sheet) Counts() Counts {
	c := Counts{
		Rules:        len(s.Rules),
		Declarations: len(s.Inline),
		Imports:      len(s.Imports),
	}
	for _, r := range s.Rules {
		c.Declarations += len(r.Declarations)
	}
	return c
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Rules += other.Rules
	c.Declarations += other.Declarations
	c.Imports += other.Imports
}
