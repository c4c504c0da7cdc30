// Package onnx implements the statistical entity source with a local
// BERT-style token classification model running on ONNX Runtime.
//
// A model directory must contain model.onnx, vocab.txt, labels.json, and
// the ONNX Runtime shared library (libonnxruntime.so).
package onnx

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

// Labeler tags text with a token classification model and BIO-decodes the
// predictions into word-aligned spans.
type Labeler struct {
	sess   *session
	tok    *tokenizer
	labels []string
}

// New loads the model, vocabulary, and label map from modelDir.
func New(modelDir string) (*Labeler, error) {
	sess, err := newSession(filepath.Join(modelDir, "model.onnx"))
	if err != nil {
		return nil, err
	}
	tok, err := newTokenizer(filepath.Join(modelDir, "vocab.txt"))
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("onnx: %w", err)
	}
	labels, err := loadLabels(filepath.Join(modelDir, "labels.json"))
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("onnx: %w", err)
	}
	return &Labeler{sess: sess, tok: tok, labels: labels}, nil
}

// Label tags text and returns BIO-decoded spans. Long texts are processed
// in windows of maxSeqLen subtokens; predictions are word-aligned via each
// word's first subtoken.
func (l *Labeler) Label(ctx context.Context, text string) ([]labeler.Span, error) {
	words := splitWords(text)
	if len(words) == 0 {
		return nil, nil
	}
	pieces := l.tok.encode(words)

	tags := make([]string, len(words))

	budget := maxSeqLen - 2 // room for [CLS] and [SEP]
	for lo := 0; lo < len(pieces); lo += budget {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi := lo + budget
		if hi > len(pieces) {
			hi = len(pieces)
		}
		if err := l.tagChunk(pieces[lo:hi], tags); err != nil {
			return nil, err
		}
	}

	return decodeBIO(text, words, tags), nil
}

// tagChunk runs one inference window and records the predicted tag for each
// head piece's word.
func (l *Labeler) tagChunk(chunk []piece, tags []string) error {
	seqLen := int64(len(chunk) + 2)
	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	typeIDs := make([]int64, seqLen)

	ids[0] = l.tok.vocab.clsID
	mask[0] = 1
	for i, p := range chunk {
		ids[i+1] = p.id
		mask[i+1] = 1
	}
	ids[seqLen-1] = l.tok.vocab.sepID
	mask[seqLen-1] = 1

	logits, err := l.sess.infer(ids, mask, typeIDs, seqLen)
	if err != nil {
		return err
	}

	n := int(l.sess.numLabels)
	for i, p := range chunk {
		if !p.head {
			continue
		}
		row := logits[(i+1)*n : (i+2)*n]
		best := 0
		for j := 1; j < n; j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		if best < len(l.labels) {
			tags[p.word] = l.labels[best]
		}
	}
	return nil
}

// decodeBIO merges per-word BIO tags into labeled spans. A dangling I- tag
// opens a new span; bare tags without a B-/I- prefix are grouped like I- runs.
func decodeBIO(text string, words []word, tags []string) []labeler.Span {
	var spans []labeler.Span
	open := false
	var start, end int
	var label string

	flush := func() {
		if open {
			spans = append(spans, labeler.Span{
				Text:  text[start:end],
				Start: start,
				End:   end,
				Label: label,
			})
			open = false
		}
	}

	for i, w := range words {
		tag := tags[i]
		switch {
		case tag == "" || tag == "O":
			flush()
		case strings.HasPrefix(tag, "B-"):
			flush()
			open, start, end, label = true, w.start, w.end, tag[2:]
		case strings.HasPrefix(tag, "I-"):
			if open && tag[2:] == label {
				end = w.end
			} else {
				flush()
				open, start, end, label = true, w.start, w.end, tag[2:]
			}
		default:
			if open && tag == label {
				end = w.end
			} else {
				flush()
				open, start, end, label = true, w.start, w.end, tag
			}
		}
	}
	flush()
	return spans
}

// Close releases ONNX Runtime resources.
func (l *Labeler) Close() error {
	if l.sess != nil {
		return l.sess.close()
	}
	return nil
}

func init() {
	labeler.Register("onnx", func(cfg labeler.Config) (labeler.Labeler, error) {
		if cfg.ModelDir == "" {
			return nil, fmt.Errorf("onnx: %w: model dir not configured", labeler.ErrUnavailable)
		}
		return New(cfg.ModelDir)
	})
}
