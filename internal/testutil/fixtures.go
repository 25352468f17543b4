package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Component options
type ComponentOption func(*domain.Component)

func WithStatus(s domain.ComponentStatus) ComponentOption {
	return func(c *domain.Component) {
		c.Status = s
	}
}

func WithWorkPackageID(id string) ComponentOption {
	return func(c *domain.Component) {
		c.WorkPackageID = &id
	}
}

func WithDiscipline(id string) ComponentOption {
	return func(c *domain.Component) {
		c.DisciplineID = id
	}
}

func NewTestComponent(categoryID string, opts ...ComponentOption) *domain.Component {
	now := time.Now().UTC()
	c := &domain.Component{
		ID:           uuid.New().String(),
		Code:         fmt.Sprintf("SP-%04d", testCodeCounter.Add(1)),
		CategoryID:   categoryID,
		DisciplineID: "piping",
		Status:       domain.ComponentNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorkPackage options
type WorkPackageOption func(*domain.WorkPackage)

func WithSquadID(id string) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.SquadID = &id
	}
}

func WithPredecessorID(id string) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.PredecessorID = &id
	}
}

func WithPriority(p int) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.Priority = p
	}
}

func WithPlannedWindow(start, end time.Time) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.PlannedStart = &start
		w.PlannedEnd = &end
	}
}

func NewTestWorkPackage(projectID, name string, opts ...WorkPackageOption) *domain.WorkPackage {
	now := time.Now().UTC()
	w := &domain.WorkPackage{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Code:      fmt.Sprintf("WP-%03d", testCodeCounter.Add(1)),
		Name:      name,
		Foreman:   "Rossi",
		Color:     "#1e66f5",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithOrdinal(o int) PhaseOption {
	return func(p *domain.Phase) {
		p.Ordinal = o
	}
}

func WithMandatory() PhaseOption {
	return func(p *domain.Phase) {
		p.Mandatory = true
	}
}

func WithInitial() PhaseOption {
	return func(p *domain.Phase) {
		p.IsInitial = true
	}
}

func WithFinal() PhaseOption {
	return func(p *domain.Phase) {
		p.IsFinal = true
	}
}

func NewTestPhase(disciplineID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:           uuid.New().String(),
		DisciplineID: disciplineID,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Squad options
type SquadOption func(*domain.Squad)

func WithForeman(name string) SquadOption {
	return func(s *domain.Squad) {
		s.Foreman = name
	}
}

func NewTestSquad(name string, opts ...SquadOption) *domain.Squad {
	now := time.Now().UTC()
	s := &domain.Squad{
		ID:        uuid.New().String(),
		Name:      name,
		Foreman:   "Bianchi",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LedgerEntry options
type LedgerOption func(*domain.LedgerEntry)

func ForComponent(id string) LedgerOption {
	return func(e *domain.LedgerEntry) {
		e.ComponentID = &id
		e.WorkPackageID = nil
	}
}

func ForWorkPackage(id string) LedgerOption {
	return func(e *domain.LedgerEntry) {
		e.WorkPackageID = &id
		e.ComponentID = nil
	}
}

func WithEntryStatus(s domain.EntryStatus) LedgerOption {
	return func(e *domain.LedgerEntry) {
		e.Status = s
	}
}

func WithEntrySquad(id string) LedgerOption {
	return func(e *domain.LedgerEntry) {
		e.SquadID = &id
	}
}

func WithInstructions(text string) LedgerOption {
	return func(e *domain.LedgerEntry) {
		e.Instructions = text
	}
}

func NewTestLedgerEntry(projectID, phaseID string, year, week int, opts ...LedgerOption) *domain.LedgerEntry {
	now := time.Now().UTC()
	e := &domain.LedgerEntry{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Year:      year,
		Week:      week,
		PhaseID:   phaseID,
		Status:    domain.EntryPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
