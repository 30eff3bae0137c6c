package lint

// Rule is the interface every lint rule implements. Plugins may implement it
// directly; built-in rules are RuleDef values wrapped by WrapRuleDef.
type Rule interface {
	// ID returns the unique identifier, e.g., "LT01"
	ID() string

	// Name returns the human-readable name, e.g., "layout.spacing"
	Name() string

	// Group returns the category, e.g., "layout", "capitalisation"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// Options returns the configuration options this rule accepts
	Options() []OptionSpec

	// Dialects returns dialect restrictions; nil/empty means all dialects.
	Dialects() []string

	// Crawler selects the segments Check is called for.
	Crawler() Crawler

	// Fixable reports whether the rule's violations can carry fixes.
	Fixable() bool

	// Check evaluates the rule at one segment.
	Check(c *Context) ([]Violation, error)
}

// Documented is implemented by rules that carry long-form documentation.
type Documented interface {
	Rationale() string
	BadExample() string
	GoodExample() string
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Group           string       `json:"group" yaml:"group"`
	Description     string       `json:"description" yaml:"description"`
	DefaultSeverity Severity     `json:"default_severity" yaml:"default_severity"`
	Options         []OptionSpec `json:"options,omitempty" yaml:"options,omitempty"`
	Dialects        []string     `json:"dialects,omitempty" yaml:"dialects,omitempty"`
	Fixable         bool         `json:"fixable" yaml:"fixable"`
	DocURL          string       `json:"doc_url" yaml:"doc_url"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		Options:         r.Options(),
		Dialects:        r.Dialects(),
		Fixable:         r.Fixable(),
		DocURL:          BuildDocURL(r.ID()),
	}
	if d, ok := r.(Documented); ok {
		info.Rationale = d.Rationale()
		info.BadExample = d.BadExample()
		info.GoodExample = d.GoodExample()
	}
	return info
}

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) Options() []OptionSpec     { return w.def.Options }
func (w *wrappedRuleDef) Dialects() []string        { return w.def.Dialects }
func (w *wrappedRuleDef) Crawler() Crawler          { return w.def.Crawl }
func (w *wrappedRuleDef) Fixable() bool             { return w.def.Fixable }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }

func (w *wrappedRuleDef) Check(c *Context) ([]Violation, error) {
	return w.def.Check(c)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
