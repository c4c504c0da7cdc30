package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cobalt-ridge/gleaner/internal/model"
)

var csvHeader = []string{"Type", "Text", "Start", "End", "Confidence", "Context"}

// csvRenderer writes one row per entity followed by one row per event.
// Fields containing separators or quotes are escaped by encoding/csv.
type csvRenderer struct{}

func (csvRenderer) Render(res model.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, e := range res.Entities {
		if err := w.Write(csvRow(e)); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}
	for _, ev := range res.Events {
		if err := w.Write(csvRow(ev.Annotation)); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvRow(a model.Annotation) []string {
	return []string{
		a.Type,
		a.Text,
		strconv.Itoa(a.Start),
		strconv.Itoa(a.End),
		strconv.FormatFloat(a.Confidence, 'g', -1, 64),
		a.Context,
	}
}

func (csvRenderer) ContentType() string { return "text/csv" }
func (csvRenderer) Filename() string    { return "extraction_results.csv" }
