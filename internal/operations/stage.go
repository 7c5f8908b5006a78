package operations

import (
	"context"
	"time"
)

// Stage IDs. Each stage depends on the one listed before it.
const (
	StageIDStructure = "structure"
	StageIDValidate  = "validate"
	StageIDOutliers  = "outliers"
	StageIDImpute    = "impute"
	StageIDDerive    = "derive"
)

// Stage is one pass of the pipeline over the whole table
type Stage interface {
	// ID returns the unique identifier for this Stage
	ID() string

	// Name returns the human-readable name for this Stage
	Name() string

	// Dependencies returns the IDs of the stages that must run first
	Dependencies() []string

	// Execute runs the Stage against the shared run state
	Execute(ctx context.Context, run *RunState) error
}

// StageStatus represents the current status of a Stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
)

// StageState records how one stage of a run went
type StageState struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Error     error       `json:"-"`
}

// NewStageState creates a pending stage state
func NewStageState(id, name string) *StageState {
	return &StageState{
		ID:     id,
		Name:   name,
		Status: StageStatusPending,
	}
}

// Start marks the Stage as active and sets the start time
func (s *StageState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the Stage as completed and sets the end time
func (s *StageState) Complete() {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
}

// Fail marks the Stage as failed with the given error
func (s *StageState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Error = err
}

// Duration returns how long the Stage ran
func (s *StageState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// BaseStage provides the identity half of a Stage implementation
type BaseStage struct {
	id           string
	name         string
	dependencies []string
}

// NewBaseStage creates a new base Stage
func NewBaseStage(id, name string, dependencies ...string) BaseStage {
	return BaseStage{id: id, name: name, dependencies: dependencies}
}

// ID returns the Stage ID
func (b *BaseStage) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Name returns the Stage name
func (b *BaseStage) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Dependencies returns the IDs of the stages that must run first
func (b *BaseStage) Dependencies() []string {
	if b == nil {
		return nil
	}
	return b.dependencies
}
