// Package memory is an in-memory ReportWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	items []sheets.MonthlyReport
}

var _ sheets.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendReport stores the report and returns a synthetic row reference.
func (s *Store) AppendReport(_ context.Context, r sheets.MonthlyReport) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Reports returns a copy of everything appended so far.
func (s *Store) Reports() []sheets.MonthlyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.MonthlyReport(nil), s.items...)
}
