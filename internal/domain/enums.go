package domain

type ComponentStatus string

const (
	ComponentNew         ComponentStatus = "new"
	ComponentInWarehouse ComponentStatus = "in_warehouse"
	ComponentAtSite      ComponentStatus = "at_site"
	ComponentInProgress  ComponentStatus = "in_progress"
	ComponentCompleted   ComponentStatus = "completed"
)

// ValidComponentStatuses is the canonical set of accepted component status strings.
var ValidComponentStatuses = map[string]bool{
	"new": true, "in_warehouse": true, "at_site": true,
	"in_progress": true, "completed": true,
}

type EntryStatus string

const (
	EntryPlanned    EntryStatus = "planned"
	EntryInProgress EntryStatus = "in_progress"
	EntryCompleted  EntryStatus = "completed"
	EntryPostponed  EntryStatus = "postponed"
)

// Terminal reports whether no further primary-status transition is allowed.
// Only deletion removes a completed entry.
func (s EntryStatus) Terminal() bool {
	return s == EntryCompleted
}
