package query

import (
	"log"
	"regexp"

	"github.com/thoas/go-funk"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

var _markerPattern = regexp.MustCompile(`\[(S\d+)\]`)

// Format extracts the citation markers from the raw model output and resolves
// each against the context mapping. Citations keep first-appearance order
// with duplicates collapsed. A marker the model invented is dropped from the
// citation list and logged; output without any resolvable marker still yields
// an Answer, just with no citations.
func Format(raw string, mapping ContextMapping) *rag.Answer {
	answer := &rag.Answer{Text: raw}

	markers := make([]string, 0)
	for _, match := range _markerPattern.FindAllStringSubmatch(raw, -1) {
		markers = append(markers, match[1])
	}
	markers = funk.UniqString(markers)

	for _, marker := range markers {
		chunk, ok := mapping[marker]
		if !ok {
			log.Printf("[WARN] dropping unresolvable citation marker [%s]", marker)
			answer.DroppedMarkers = append(answer.DroppedMarkers, marker)
			continue
		}
		answer.Citations = append(answer.Citations, rag.Citation{
			Marker:     marker,
			DocumentID: chunk.DocumentID,
			Seq:        chunk.Seq,
			Page:       chunk.Page,
			Span:       chunk.Span,
		})
	}
	return answer
}
