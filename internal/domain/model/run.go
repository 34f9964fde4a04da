package model

import "time"

// RunStatus is the outcome of a replacement run
type RunStatus string

const (
	// RunStatusOK is a run whose collection was rewritten
	RunStatusOK RunStatus = "ok"
	// RunStatusDryRun is a successful run whose output was not written
	RunStatusDryRun RunStatus = "dry-run"
	// RunStatusFailed is a run that stopped with an error
	RunStatusFailed RunStatus = "failed"
)

// RunRecord is the history entry of one replacement run
type RunRecord struct {
	ID         string
	Collection string
	InputPath  string
	OutputPath string
	RulesFiles []string
	Passes     []string
	Requests   int
	Status     RunStatus
	Error      string
	CreatedAt  time.Time
}

// NewRunRecord creates a RunRecord for a run starting now
func NewRunRecord(id, inputPath, outputPath string) *RunRecord {
	return &RunRecord{
		ID:         id,
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  time.Now(),
	}
}

// Fail marks the run as failed
func (r *RunRecord) Fail(err error) {
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
}
