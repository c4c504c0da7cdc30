package onnx

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxSeqLen = 128

// word is a basic token together with its byte span in the original text.
// Offsets always refer to the original text; normalization is applied only
// to the lookup form, never to the span.
type word struct {
	text  string
	start int
	end   int
}

// splitWords segments text into BERT-style basic tokens while tracking byte
// offsets. Whitespace and control runes separate tokens; punctuation and
// CJK ideographs become single-rune tokens of their own.
func splitWords(text string) []word {
	var words []word
	start := -1 // byte offset of the open token, -1 when none
	flush := func(end int) {
		if start >= 0 {
			words = append(words, word{text: text[start:end], start: start, end: end})
			start = -1
		}
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == 0 || r == 0xFFFD || isWhitespace(r) || isControl(r):
			flush(i)
		case isPunctuation(r) || isCJK(r):
			flush(i)
			words = append(words, word{text: text[i : i+size], start: i, end: i + size})
		default:
			if start < 0 {
				start = i
			}
		}
		i += size
	}
	flush(len(text))
	return words
}

// piece is one WordPiece subtoken mapped back to the word it came from.
type piece struct {
	id   int64
	word int  // index into the word slice
	head bool // first subtoken of its word
}

// tokenizer performs offset-preserving WordPiece tokenization.
type tokenizer struct {
	vocab *vocab
}

func newTokenizer(vocabPath string) (*tokenizer, error) {
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v}, nil
}

// encode wordpieces each word's normalized form. A word that cannot be
// decomposed becomes a single [UNK] piece so word alignment is preserved.
func (t *tokenizer) encode(words []word) []piece {
	var pieces []piece
	for wi, w := range words {
		ids := t.wordpiece(normalizeWord(w.text))
		for pi, id := range ids {
			pieces = append(pieces, piece{id: id, word: wi, head: pi == 0})
		}
	}
	return pieces
}

// wordpiece decomposes one normalized token into subword IDs, greedy
// longest-match-first.
func (t *tokenizer) wordpiece(token string) []int64 {
	runes := []rune(token)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) > 200 {
		return []int64{t.vocab.unkID}
	}
	var ids []int64
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := false
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if t.vocab.contains(sub) {
				ids = append(ids, t.vocab.lookup(sub))
				found = true
				break
			}
			end--
		}
		if !found {
			return []int64{t.vocab.unkID}
		}
		start = end
	}
	return ids
}

// normalizeWord produces the lowercase, accent-stripped lookup form.
func normalizeWord(s string) string {
	return stripAccents(strings.ToLower(s))
}

// stripAccents removes combining diacritical marks after NFD normalization.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Character classification helpers matching BERT's reference tokenizer.

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
