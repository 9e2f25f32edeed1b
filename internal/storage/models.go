package storage

import "time"

// IngestRun is the stored summary of one ingestion run.
//
// swagger:model IngestRun
type IngestRun struct {
	ID         string    `json:"id"` // UUID
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Requested  int       `json:"requested"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Errors     []string  `json:"errors"` // One message per failed document
}

// timeLayout is the text encoding of timestamps in every table. Fixed-width
// fractions keep lexical order equal to time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
