package models

import (
	"fmt"
	"sort"
	"strings"

	"catalogsync_api/metrics"
)

// CategoryMapping is static per-run configuration mapping a supplier category
// to its storefront collection and business name.
type CategoryMapping struct {
	SupplierCategoryID int
	CollectionID       string
	BusinessName       string
}

type CategoryStats struct {
	Created        int
	Updated        int
	ImagesUploaded int
	Errors         int
}

// SyncStats collects per-category counters for one run. The run is
// single-threaded, so plain ints are enough; prometheus counters are bumped
// alongside so the numbers survive the process.
type SyncStats struct {
	categories   map[string]*CategoryStats
	RecreateGaps int
}

func NewSyncStats() *SyncStats {
	return &SyncStats{categories: make(map[string]*CategoryStats)}
}

func (s *SyncStats) category(name string) *CategoryStats {
	cs, ok := s.categories[name]
	if !ok {
		cs = &CategoryStats{}
		s.categories[name] = cs
	}
	return cs
}

func (s *SyncStats) AddCreated(category string) {
	s.category(category).Created++
	metrics.RecordProductCreated(category)
}

func (s *SyncStats) AddUpdated(category string) {
	s.category(category).Updated++
	metrics.RecordProductUpdated(category)
}

func (s *SyncStats) AddImageUploaded(category string) {
	s.category(category).ImagesUploaded++
	metrics.RecordImageUploaded(category)
}

func (s *SyncStats) AddError(category string) {
	s.category(category).Errors++
	metrics.RecordSyncError(category)
}

func (s *SyncStats) AddRecreateGap(category string) {
	s.RecreateGaps++
	s.AddError(category)
	metrics.RecordRecreateGap()
}

func (s *SyncStats) Category(name string) CategoryStats {
	if cs, ok := s.categories[name]; ok {
		return *cs
	}
	return CategoryStats{}
}

func (s *SyncStats) Categories() map[string]CategoryStats {
	out := make(map[string]CategoryStats, len(s.categories))
	for name, cs := range s.categories {
		out[name] = *cs
	}
	return out
}

func (s *SyncStats) String() string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		cs := s.categories[name]
		fmt.Fprintf(&b, "%s: created=%d updated=%d images=%d errors=%d\n",
			name, cs.Created, cs.Updated, cs.ImagesUploaded, cs.Errors)
	}
	if s.RecreateGaps > 0 {
		fmt.Fprintf(&b, "recreate gaps: %d\n", s.RecreateGaps)
	}
	return b.String()
}
