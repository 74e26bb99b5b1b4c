package domain

import "time"

type CollectionStatus string

const (
	CollectionStatusSuccess CollectionStatus = "success"
	CollectionStatusFailed  CollectionStatus = "failed"
)

// PlatformResult é o resultado da coleta de uma plataforma em uma execução
type PlatformResult struct {
	Platform   Platform         `json:"platform"`
	Status     CollectionStatus `json:"status"`
	SnapshotID string           `json:"snapshot_id,omitempty"`
	Error      string           `json:"error,omitempty"`
	DurationMs int64            `json:"duration_ms"`
}

// CollectionReport resume uma execução de CollectAll
type CollectionReport struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Results    []PlatformResult `json:"results"`
}

func (r *CollectionReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == CollectionStatusSuccess {
			n++
		}
	}
	return n
}

func (r *CollectionReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}
