package analysis

import "strings"

// Phrases that trigger the crisis-risk flag.
var riskPhrases = []string{"suicide", "kill myself", "end my life", "self harm"}

// DetectRisk reports whether the text contains any crisis-language phrase,
// case-insensitively. This is a conservative lexical trigger, not a clinical
// assessment: paraphrased distress will not match, so false negatives are
// expected. Downstream consumers must not treat a false result as an
// absence of risk.
func DetectRisk(text string) bool {
	lowered := strings.ToLower(text)
	return containsAny(lowered, riskPhrases)
}
