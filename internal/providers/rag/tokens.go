package rag

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// Truncate returns the longest prefix of whole sentences that fits in
// maxTokens. A single sentence over the limit is cut at a token boundary.
func Truncate(text string, maxTokens int) string {
	text = strings.TrimSpace(text)
	if text == "" || maxTokens <= 0 {
		return ""
	}
	if CountTokens(text) <= maxTokens {
		return text
	}

	var b strings.Builder
	used := 0
	for _, sentence := range splitSentences(text) {
		n := CountTokens(sentence)
		if used+n > maxTokens {
			if b.Len() == 0 {
				return cutTokens(sentence, maxTokens)
			}
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
			used++
		}
		b.WriteString(sentence)
		used += n
	}
	return b.String()
}

func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

func cutTokens(text string, maxTokens int) string {
	enc := getTokenizer()
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return strings.TrimSpace(enc.Decode(tokens[:maxTokens]))
}

// splitSentences splits on sentence enders followed by space or end of text,
// paragraph by paragraph.
func splitSentences(text string) []string {
	enders := map[rune]bool{'.': true, '!': true, '?': true, '…': true}

	var sentences []string
	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)
			if enders[r] && (i+1 >= len(runes) || unicode.IsSpace(runes[i+1])) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		// soft wraps inside a paragraph
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}
