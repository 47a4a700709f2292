package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OperationMetric is one row of the backend's performance report.
type OperationMetric struct {
	Operation      string  `json:"-"`
	DurationMS     float64 `json:"duration_ms"`
	MemoryChangeMB float64 `json:"memory_change_mb"`
}

// PerformanceMetrics keeps the operations in the order the backend sent
// them; a plain map would lose it. A nil value means the reply had no
// performance object.
type PerformanceMetrics []OperationMetric

func (p *PerformanceMetrics) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*p = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("performance: expected object, got %v", tok)
	}

	// non-nil even when empty: an empty report is still a report
	out := PerformanceMetrics{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("performance: unexpected key %v", tok)
		}

		var m OperationMetric
		if err := dec.Decode(&m); err != nil {
			return fmt.Errorf("performance %q: %w", key, err)
		}
		m.Operation = key
		out = append(out, m)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

func (p PerformanceMetrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Operation)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GenerateResponse is the JSON reply of the generate-statement endpoint.
type GenerateResponse struct {
	Success     bool               `json:"success,omitempty"`
	Message     string             `json:"message,omitempty"`
	Error       string             `json:"error,omitempty"`
	Performance PerformanceMetrics `json:"performance"`
	DownloadURL string             `json:"download_url"`
}
