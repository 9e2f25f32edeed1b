package ingest

import (
	"math"
	"sort"
	"time"

	"cheatsheets/internal/cheatsheet"
)

// Report summarizes one ingestion run.
type Report struct {
	// RunID identifies the run in the ingest_runs table.
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Requested is the number of distinct ids in the run.
	Requested int `json:"requested"`
	// Succeeded is the number of cheatsheets stored.
	Succeeded int `json:"succeeded"`
	// Failed is the number of ids that were not stored.
	Failed int `json:"failed"`
	// Stored lists the stored ids in request order.
	Stored []string `json:"stored"`
	// Failures lists every id that was not stored, with the reason.
	Failures []Failure `json:"failures"`
	// Sections describes the section counts of the stored cheatsheets.
	Sections SectionStats `json:"sections"`
}

// Failure is a document that could not be assembled, validated or stored.
type Failure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// SectionStats contains statistics about sections per stored cheatsheet.
type SectionStats struct {
	// Total is the number of sections across all stored cheatsheets.
	Total int `json:"total"`
	// Empty is the number of sections with no content.
	Empty int `json:"empty"`
	// DocsWithoutSections is the number of cheatsheets that produced no sections.
	DocsWithoutSections int `json:"docs_without_sections"`
	// Min is the minimum section count of a cheatsheet.
	Min int `json:"min"`
	// Max is the maximum section count of a cheatsheet.
	Max int `json:"max"`
	// Mean is the mean section count.
	Mean float64 `json:"mean"`
	// P95 is the 95th percentile section count.
	P95 int `json:"p95"`
}

// computeSectionStats computes section statistics over stored cheatsheets.
func computeSectionStats(sheets []*cheatsheet.Cheatsheet) SectionStats {
	if len(sheets) == 0 {
		return SectionStats{}
	}

	var stats SectionStats
	counts := make([]int, 0, len(sheets))
	for _, sheet := range sheets {
		n := len(sheet.Sections)
		if n == 0 {
			stats.DocsWithoutSections++
		}
		for _, section := range sheet.Sections {
			if section.Content == "" {
				stats.Empty++
			}
		}
		stats.Total += n
		counts = append(counts, n)
	}

	// Sort for percentile calculation
	sort.Ints(counts)

	stats.Min = counts[0]
	stats.Max = counts[len(counts)-1]
	stats.Mean = math.Round(float64(stats.Total)/float64(len(counts))*100) / 100 // Round to 2 decimal places

	p95Index := int(math.Ceil(float64(len(counts)) * 0.95))
	if p95Index >= len(counts) {
		p95Index = len(counts) - 1
	}
	stats.P95 = counts[p95Index]

	return stats
}
