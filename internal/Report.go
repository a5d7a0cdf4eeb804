package internal

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
)

// Report is the name-ordered collection of extracted server configs
// built up over one run.
type Report struct {
	records map[string]*ServerConfig
}

func NewReport() *Report {
	return &Report{
		records: make(map[string]*ServerConfig),
	}
}

func (r *Report) Add(cfg *ServerConfig) {
	r.records[cfg.Name] = cfg
}

func (r *Report) Get(name string) *ServerConfig {
	return r.records[name]
}

func (r *Report) Len() int {
	return len(r.records)
}

// Names returns all record names in ascending order. Serialization
// re-sorts here rather than trusting enumeration order.
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalIndented serializes the report as a single pretty-printed JSON
// object with keys in ascending name order. The output is byte-stable
// for identical input.
func (r *Report) MarshalIndented() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, name := range r.Names() {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		key, err := json.Marshal(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize key %s", name)
		}
		buf.Write(key)
		buf.WriteString(": ")
		record, err := json.MarshalIndent(r.records[name], "  ", "  ")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize record %s", name)
		}
		buf.Write(record)
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}
