// internal/relevance/stopwords.go
package relevance

// stopwords are common tokens excluded from scoring. They still appear in
// the selected output; they just never drive selection.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "has": {}, "have": {}, "had": {}, "what": {},
	"with": {}, "this": {}, "that": {}, "from": {}, "they": {}, "will": {},
	"would": {}, "there": {}, "their": {}, "been": {}, "were": {},
	"which": {}, "when": {}, "where": {}, "how": {}, "why": {}, "who": {},
	"its": {}, "his": {}, "she": {}, "him": {}, "also": {}, "than": {},
	"then": {}, "into": {}, "over": {}, "about": {}, "does": {}, "did": {},
	"your": {}, "them": {}, "these": {}, "those": {}, "some": {},
	"such": {}, "only": {}, "just": {}, "more": {}, "most": {},
	"very": {}, "each": {}, "other": {}, "after": {}, "before": {},
	"while": {}, "between": {}, "because": {}, "through": {},
	"during": {}, "under": {}, "above": {}, "both": {}, "few": {},
	"any": {}, "own": {}, "same": {}, "too": {}, "here": {}, "again": {},
}
