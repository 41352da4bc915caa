package service

import (
	"html"
	"regexp"
	"strings"
)

// ITextService cleans supplier-provided text before it is sent to the
// storefront: descriptions arrive with markup and links, titles with stray
// whitespace, and both have platform length limits.
type ITextService interface {
	RemoveTags(input string) string
	RemoveLinks(input string) string
	ReduceToLength(input string, length int) string
	ClearAndReduce(input string, length int) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var (
	tagRe  = regexp.MustCompile(`<[^>]*>`)
	linkRe = regexp.MustCompile(`https?://[^\s]+`)
)

func (ts *TextService) RemoveTags(input string) string {
	return tagRe.ReplaceAllString(html.UnescapeString(input), "")
}

func (ts *TextService) RemoveLinks(input string) string {
	return linkRe.ReplaceAllString(input, "")
}

// ReduceToLength cuts on word boundaries, never mid-word.
func (ts *TextService) ReduceToLength(input string, length int) string {
	var builder strings.Builder
	totalLength := 0

	for i, word := range strings.Split(input, " ") {
		if totalLength+len(word) > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
			totalLength++
		}
		builder.WriteString(word)
		totalLength += len(word)
	}
	return builder.String()
}

func (ts *TextService) ClearAndReduce(input string, length int) string {
	cleaned := ts.RemoveLinks(ts.RemoveTags(input))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return ts.ReduceToLength(cleaned, length)
}
