package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"searchmind/internal/rag/schema"
)

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "", BuildContext([]schema.RetrievedDocument{}))
}

func TestBuildContextFormat(t *testing.T) {
	docs := []schema.RetrievedDocument{
		{
			Content:    "First passage.",
			Metadata:   schema.Metadata{Article: "12", Chapter: "III"},
			Similarity: 0.934,
		},
		{
			Content:    "Second passage.",
			Metadata:   schema.Metadata{Source: "notes.txt"},
			Similarity: 0.71,
		},
	}

	block := BuildContext(docs)

	assert.Contains(t, block, "===== DOCUMENT 1 =====\nSOURCE: Article 12 Chapter III\nRELEVANCE: 93%\nCONTENT:\nFirst passage.")
	assert.Contains(t, block, "===== DOCUMENT 2 =====\nSOURCE: Unclassified document\nRELEVANCE: 71%\nCONTENT:\nSecond passage.")

	// Ranked order survives assembly.
	assert.Less(t, strings.Index(block, "DOCUMENT 1"), strings.Index(block, "DOCUMENT 2"))
}

func TestSourceLabel(t *testing.T) {
	cases := []struct {
		name string
		meta schema.Metadata
		want string
	}{
		{"article only", schema.Metadata{Article: "5"}, "Article 5"},
		{"chapter only", schema.Metadata{Chapter: "IV"}, "Chapter IV"},
		{"both", schema.Metadata{Article: "5", Chapter: "IV"}, "Article 5 Chapter IV"},
		{"neither", schema.Metadata{Source: "plain.txt"}, "Unclassified document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sourceLabel(tc.meta))
		})
	}
}
