// Package stats persists monthly audit counters for the service.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats aggregates audit activity for one calendar month.
type MonthlyStats struct {
	SiteAudits    int       `json:"site_audits"`
	PageAudits    int       `json:"page_audits"`
	FailedAudits  int       `json:"failed_audits"`
	PagesAnalyzed int       `json:"pages_analyzed"`
	TotalAuditMs  int64     `json:"total_audit_ms"`
	LastUpdated   time.Time `json:"last_updated"`
}

// AverageAuditMs is the mean duration of an audit this month.
func (m MonthlyStats) AverageAuditMs() int64 {
	runs := int64(m.SiteAudits + m.PageAudits)
	if runs == 0 {
		return 0
	}
	return m.TotalAuditMs / runs
}

// Storage handles persistent storage of audit statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a statistics store backed by a JSON file under dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes to a temporary file first and renames it into place.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// Write already pending.
	}
}

func (s *Storage) monthLocked(key string) *MonthlyStats {
	m, exists := s.stats[key]
	if !exists {
		m = &MonthlyStats{}
		s.stats[key] = m
	}
	return m
}

// RecordSiteAudit records one completed site audit.
func (s *Storage) RecordSiteAudit(pagesAnalyzed int, failed bool, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.monthLocked(currentMonth())
	m.SiteAudits++
	m.PagesAnalyzed += pagesAnalyzed
	if failed {
		m.FailedAudits++
	}
	m.TotalAuditMs += duration.Milliseconds()
	m.LastUpdated = time.Now()

	s.maybeRequestWriteLocked()
}

// RecordPageAudit records one single-page audit.
func (s *Storage) RecordPageAudit(failed bool, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.monthLocked(currentMonth())
	m.PageAudits++
	m.PagesAnalyzed++
	if failed {
		m.FailedAudits++
	}
	m.TotalAuditMs += duration.Milliseconds()
	m.LastUpdated = time.Now()

	s.maybeRequestWriteLocked()
}

func (s *Storage) maybeRequestWriteLocked() {
	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[currentMonth()]; exists {
		return *m
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns statistics for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[yearMonth]; exists {
		return *m, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all recorded months, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Cleanup drops every month except the current and previous one.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}

	s.requestWrite()
}

// Shutdown flushes pending writes and stops the background writer.
func (s *Storage) Shutdown() error {
	close(s.done)
	return s.save()
}
