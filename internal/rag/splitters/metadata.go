package splitters

import "regexp"

// Structural marker patterns. Spanish and English legal documents label
// sections as "Artículo 12", "Capítulo IV" or "Título II"; the English
// spellings are accepted as well. Chapter and title numerals may be roman or
// arabic.
var (
	articleRegex = regexp.MustCompile(`(?i)art[íi]culo\s+(\d+)|article\s+(\d+)`)
	chapterRegex = regexp.MustCompile(`(?i)cap[íi]tulo\s+([IVXLCDM]+|\d+)|chapter\s+([IVXLCDM]+|\d+)`)
	titleRegex   = regexp.MustCompile(`(?i)t[íi]tulo\s+([IVXLCDM]+|\d+)|title\s+([IVXLCDM]+|\d+)`)
)

// ExtractStructure scans chunk text for structural markers and returns the
// first article, chapter and title found. Absent markers yield empty strings;
// that is not an error.
func ExtractStructure(text string) (article, chapter, title string) {
	if m := articleRegex.FindStringSubmatch(text); m != nil {
		article = firstGroup(m)
	}
	if m := chapterRegex.FindStringSubmatch(text); m != nil {
		chapter = firstGroup(m)
	}
	if m := titleRegex.FindStringSubmatch(text); m != nil {
		title = firstGroup(m)
	}
	return article, chapter, title
}

// firstGroup returns the first non-empty capture group of an alternation.
func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
