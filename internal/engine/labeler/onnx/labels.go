package onnx

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// loadLabels reads a labels.json file mapping class index to tag name,
// e.g. {"0": "O", "1": "B-PER", "2": "I-PER"}. Indexes without an entry
// decode as "O".
func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("labels: file is empty: %s", path)
	}

	maxIdx := -1
	byIdx := make(map[int]string, len(raw))
	for k, tag := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("labels: bad class index %q", k)
		}
		byIdx[idx] = tag
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	labels := make([]string, maxIdx+1)
	for i := range labels {
		labels[i] = "O"
	}
	for idx, tag := range byIdx {
		labels[idx] = tag
	}
	return labels, nil
}
