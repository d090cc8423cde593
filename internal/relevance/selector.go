// internal/relevance/selector.go

// Package relevance extracts the most query-relevant excerpts from a
// document under a character budget. Select is a pure function: identical
// inputs always yield identical output.
package relevance

import (
	"sort"
	"strings"
	"unicode"
)

// Paragraphs longer than this are split into sentence spans so selection
// works on documents without paragraph breaks.
const maxSegmentChars = 400

const segmentSeparator = "\n\n"

// Select returns the most query-relevant parts of document, never exceeding
// budget characters. Selected segments keep their original document order.
// An empty document yields "", and a query with no matching terms falls
// back to the leading slice of the document.
func Select(document, query string, budget int) string {
	if budget <= 0 || document == "" {
		return ""
	}
	if len(document) <= budget {
		return document
	}

	segments := segment(document)
	terms := queryTerms(query)

	scores := make([]int, len(segments))
	total := 0
	for i, seg := range segments {
		scores[i] = scoreSegment(seg, terms)
		total += scores[i]
	}

	if total == 0 {
		// Position heuristic: no segment matches the query, keep the
		// leading slice of the document.
		return truncateAtBoundary(document, budget)
	}

	// Rank by descending score; ties resolve to the earlier segment so the
	// result is deterministic.
	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	picked := make(map[int]string)
	used := 0
	for _, idx := range order {
		seg := segments[idx]
		cost := len(seg)
		if len(picked) > 0 {
			cost += len(segmentSeparator)
		}

		if used+cost <= budget {
			picked[idx] = seg
			used += cost
			continue
		}

		// First segment that no longer fits: truncate it into the
		// remaining budget and stop.
		remaining := budget - used
		if len(picked) > 0 {
			remaining -= len(segmentSeparator)
		}
		if remaining > 0 {
			if cut := truncateAtBoundary(seg, remaining); cut != "" {
				picked[idx] = cut
			}
		}
		break
	}

	// Output in document order, not score order.
	indices := make([]int, 0, len(picked))
	for idx := range picked {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		parts = append(parts, picked[idx])
	}
	return strings.Join(parts, segmentSeparator)
}

// segment partitions a document into paragraph spans, splitting oversized
// paragraphs at sentence boundaries.
func segment(document string) []string {
	var segments []string
	for _, para := range strings.Split(document, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= maxSegmentChars {
			segments = append(segments, para)
			continue
		}
		segments = append(segments, splitSentences(para)...)
	}
	return segments
}

// splitSentences breaks a paragraph after sentence-ending punctuation,
// packing sentences back together up to maxSegmentChars per span.
func splitSentences(para string) []string {
	var sentences []string
	start := 0
	runes := []rune(para)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		s := strings.TrimSpace(string(runes[start : i+1]))
		if s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}

	var spans []string
	var current string
	for _, s := range sentences {
		switch {
		case current == "":
			current = s
		case len(current)+1+len(s) <= maxSegmentChars:
			current = current + " " + s
		default:
			spans = append(spans, current)
			current = s
		}
	}
	if current != "" {
		spans = append(spans, current)
	}
	return spans
}

// queryTerms extracts the significant scoring terms of a query: lowercase,
// at least three characters, not a stopword.
func queryTerms(query string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	var terms []string
	for _, tok := range tokens {
		if len(tok) < 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// scoreSegment counts case-insensitive term occurrences in the segment.
func scoreSegment(seg string, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(seg)
	score := 0
	for _, term := range terms {
		score += strings.Count(lower, term)
	}
	return score
}

// truncateAtBoundary cuts s to at most n characters, backing up to the last
// whitespace so the cut does not land mid-token where avoidable.
func truncateAtBoundary(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace)
}
