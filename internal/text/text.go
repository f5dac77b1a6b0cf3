// Package text splits raw essay text into word tokens, sentences and
// paragraphs. Every function is pure: output depends only on the input.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ComplexWordLength is the minimum token length counted as a complex word.
const ComplexWordLength = 7

// Token is a contiguous word extracted from text.
type Token struct {
	Text  string // surface form with punctuation stripped
	Lower string
	Len   int // length in characters
}

// Sentence is a span of text ending at a sentence boundary.
type Sentence struct {
	Index  int // zero-based position in the document
	Text   string
	Tokens []Token
}

// WordCount returns the number of word tokens in the sentence.
func (s Sentence) WordCount() int {
	return len(s.Tokens)
}

// Document is the segmented form of one input text.
type Document struct {
	Raw        string
	Sentences  []Sentence
	Tokens     []Token
	Paragraphs int
}

// Segment tokenizes raw into sentences, words and a paragraph count.
func Segment(raw string) *Document {
	return &Document{
		Raw:        raw,
		Sentences:  SplitSentences(raw),
		Tokens:     Words(raw),
		Paragraphs: CountParagraphs(raw),
	}
}

// WordCount returns the number of word tokens in the document.
func (d *Document) WordCount() int {
	return len(d.Tokens)
}

// SentenceCount returns the number of sentences in the document.
func (d *Document) SentenceCount() int {
	return len(d.Sentences)
}

// AverageWordLength is the mean token length, 0 when there are no tokens.
func (d *Document) AverageWordLength() float64 {
	if len(d.Tokens) == 0 {
		return 0
	}
	total := 0
	for _, tok := range d.Tokens {
		total += tok.Len
	}
	return float64(total) / float64(len(d.Tokens))
}

// AverageSentenceLength is words per sentence, 0 when there are no sentences.
func (d *Document) AverageSentenceLength() float64 {
	if len(d.Sentences) == 0 {
		return 0
	}
	return float64(len(d.Tokens)) / float64(len(d.Sentences))
}

// ComplexWordCount counts tokens of at least ComplexWordLength characters.
func (d *Document) ComplexWordCount() int {
	n := 0
	for _, tok := range d.Tokens {
		if tok.Len >= ComplexWordLength {
			n++
		}
	}
	return n
}

// stripRunes are removed from words before splitting on whitespace
const stripRunes = "()[]{}.,!?;:\"'`"

// Words extracts word tokens from s. Punctuation is stripped, the rest is
// split on whitespace, and fragments without a letter (bare numbers,
// symbols) are dropped.
func Words(s string) []Token {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripRunes, r) {
			return -1
		}
		return r
	}, s)

	var tokens []Token
	for _, field := range strings.Fields(stripped) {
		if !hasLetter(field) {
			continue
		}
		tokens = append(tokens, Token{
			Text:  field,
			Lower: strings.ToLower(field),
			Len:   utf8.RuneCountInString(field),
		})
	}
	return tokens
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// SplitSentences normalizes whitespace and splits at a '.', '!' or '?'
// followed by a space and an uppercase letter or digit. Abbreviations such as
// "Dr. Smith" split early and uncapitalized run-ons stay merged.
func SplitSentences(s string) []Sentence {
	normalized := strings.Join(strings.Fields(s), " ")

	var sentences []Sentence
	add := func(span string) {
		span = strings.TrimSpace(span)
		if span == "" {
			return
		}
		sentences = append(sentences, Sentence{
			Index:  len(sentences),
			Text:   span,
			Tokens: Words(span),
		})
	}

	start := 0
	for i := 0; i < len(normalized); i++ {
		switch normalized[i] {
		case '.', '!', '?':
		default:
			continue
		}
		if i+2 >= len(normalized) || normalized[i+1] != ' ' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(normalized[i+2:])
		if unicode.IsUpper(next) || unicode.IsDigit(next) {
			add(normalized[start : i+1])
			start = i + 2
		}
	}
	add(normalized[start:])

	return sentences
}

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// CountParagraphs counts non-empty spans separated by two or more newlines.
func CountParagraphs(s string) int {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	n := 0
	for _, p := range paragraphBreak.Split(s, -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
