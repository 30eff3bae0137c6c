package lint

import (
	"fmt"
	"strings"
)

// DocsBaseURL is the hosted rule documentation.
const DocsBaseURL = "https://leaplint.dev/docs/rules"

// DocPage is the page name of a rule under DocsBaseURL. Generated rule docs
// are written to DocPage(id) + ".md".
func DocPage(ruleID string) string {
	return strings.ToLower(ruleID)
}

// BuildDocURL constructs a documentation URL for a rule.
func BuildDocURL(ruleID string) string {
	return fmt.Sprintf("%s/%s", DocsBaseURL, DocPage(ruleID))
}
