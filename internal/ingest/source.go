package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Source yields raw dataset rows in file order. Next returns io.EOF after
// the last row and a *RowError for a row that cannot be read but can be
// skipped.
type Source interface {
	Next() ([]string, error)
	Name() string
}

// CSVSource reads a comma separated dataset with a header row.
type CSVSource struct {
	r          *csv.Reader
	name       string
	headerRead bool
}

func NewCSVSource(r io.Reader, name string) *CSVSource {
	cr := csv.NewReader(r)
	// Column count is checked by Normalize so a short row is rejected, not fatal.
	cr.FieldsPerRecord = -1
	return &CSVSource{r: cr, name: name}
}

func (s *CSVSource) Name() string { return s.name }

func (s *CSVSource) Next() ([]string, error) {
	if !s.headerRead {
		if _, err := s.r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%s: missing header row", s.name)
			}
			return nil, fmt.Errorf("%s: read header: %w", s.name, err)
		}
		s.headerRead = true
	}

	row, err := s.r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &RowError{Line: parseErr.Line, Err: parseErr.Err}
		}
		return nil, err
	}
	return row, nil
}
