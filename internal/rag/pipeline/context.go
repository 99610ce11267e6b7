package pipeline

import (
	"fmt"
	"math"
	"strings"

	"searchmind/internal/rag/schema"
)

// unclassifiedLabel is used when a record carries no structural tags.
const unclassifiedLabel = "Unclassified document"

// BuildContext renders retrieved records into the delimited context block
// handed to the generator. Records keep their ranked order; each block shows
// the source label, the relevance percentage and the raw content. An empty
// input yields an empty string, which callers must treat as "no grounding
// available".
func BuildContext(docs []schema.RetrievedDocument) string {
	var sb strings.Builder

	for i, doc := range docs {
		sb.WriteString(fmt.Sprintf("===== DOCUMENT %d =====\n", i+1))
		sb.WriteString("SOURCE: " + sourceLabel(doc.Metadata) + "\n")
		sb.WriteString(fmt.Sprintf("RELEVANCE: %d%%\n", int(math.Round(doc.Similarity*100))))
		sb.WriteString("CONTENT:\n")
		sb.WriteString(doc.Content)
		sb.WriteString("\n========================\n\n")
	}

	return sb.String()
}

// sourceLabel joins the structural tags of a record into a human-readable
// source description.
func sourceLabel(meta schema.Metadata) string {
	var parts []string
	if meta.Article != "" {
		parts = append(parts, "Article "+meta.Article)
	}
	if meta.Chapter != "" {
		parts = append(parts, "Chapter "+meta.Chapter)
	}
	if len(parts) == 0 {
		return unclassifiedLabel
	}
	return strings.Join(parts, " ")
}
