package domain

type LayoutMode string

const (
	LayoutGrid      LayoutMode = "grid"
	LayoutSidebar   LayoutMode = "sidebar"
	LayoutSpotlight LayoutMode = "spotlight"
	LayoutSolo      LayoutMode = "solo"
)

// ValidLayout reports whether m is one of the enumerated layout modes.
func ValidLayout(m LayoutMode) bool {
	switch m {
	case LayoutGrid, LayoutSidebar, LayoutSpotlight, LayoutSolo:
		return true
	}
	return false
}

type SlotRole string

const (
	// RoleCell is a uniformly sized grid cell.
	RoleCell SlotRole = "cell"
	// RolePrimary is the single large slot of sidebar, spotlight and solo layouts.
	RolePrimary SlotRole = "primary"
	// RoleSecondary is a small stacked slot in sidebar layout.
	RoleSecondary SlotRole = "secondary"
)

// Slot is one position in the composed visual arrangement.
type Slot struct {
	Participant *Participant
	Role        SlotRole
}

// GridColumns picks the column count for a grid arrangement:
// a single cell for one participant, two columns up to four, three beyond.
func GridColumns(count int) int {
	switch {
	case count <= 1:
		return 1
	case count <= 4:
		return 2
	default:
		return 3
	}
}
