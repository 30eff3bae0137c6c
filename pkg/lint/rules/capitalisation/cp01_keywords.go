package capitalisation

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Keywords enforces the letter case of keywords.
var Keywords = lint.RuleDef{
	ID:          "CP01",
	Name:        "capitalisation.keywords",
	Group:       "capitalisation",
	Description: "Inconsistent capitalisation of keywords.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Keyword),
	Check:       checkKeywords,
	Options:     []lint.OptionSpec{policyOption()},
	Fixable:     true,
	BadExample:  "SELECT a from t",
	GoodExample: "SELECT a FROM t",
}

// Unreserved keywords under these parents are names, not keywords.
var identifierParents = []string{
	"column_reference",
	"table_reference",
	"alias_expression",
	"common_table_expression",
	"cte_column_list",
	"wildcard_identifier",
	"join_using_condition",
}

func checkKeywords(c *lint.Context) ([]lint.Violation, error) {
	return checkCase(c, isKeyword, "Keywords")
}

func isKeyword(c *lint.Context, r *segment.Raw, parent segment.Segment) bool {
	if isLiteralWord(r) {
		return false
	}
	// Function names and data types have their own conventions.
	if segment.IsType(parent, "function_name", "data_type") {
		return false
	}
	return !segment.IsType(parent, identifierParents...) || isReserved(c, r.Raw())
}
