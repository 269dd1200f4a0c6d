package services

import (
	"sort"

	"stagecast/internal/core/domain"
)

// Compose derives the ordered visual arrangement for the given participants
// and layout mode. It is a pure function: identical input always yields an
// identical slot ordering, and it never fails.
//
// Placement rules: only on-stage participants are considered; screen-kind
// participants sort before camera-kind ones (screen content takes priority
// placement), ties broken by insertion order. Spotlight and solo show only
// the first participant after sorting; the rest stay on stage, invisible
// until the layout changes back.
func Compose(participants []*domain.Participant, layout domain.LayoutMode) []domain.Slot {
	onStage := make([]*domain.Participant, 0, len(participants))
	for _, p := range participants {
		if p.OnStage {
			onStage = append(onStage, p)
		}
	}

	if len(onStage) == 0 {
		return nil
	}

	sort.SliceStable(onStage, func(i, j int) bool {
		si := onStage[i].Kind == domain.KindScreen
		sj := onStage[j].Kind == domain.KindScreen
		if si != sj {
			return si
		}
		return onStage[i].Ordinal < onStage[j].Ordinal
	})

	switch layout {
	case domain.LayoutSidebar:
		slots := make([]domain.Slot, 0, len(onStage))
		slots = append(slots, domain.Slot{Participant: onStage[0], Role: domain.RolePrimary})
		for _, p := range onStage[1:] {
			slots = append(slots, domain.Slot{Participant: p, Role: domain.RoleSecondary})
		}
		return slots

	case domain.LayoutSpotlight, domain.LayoutSolo:
		return []domain.Slot{{Participant: onStage[0], Role: domain.RolePrimary}}

	default: // grid
		slots := make([]domain.Slot, 0, len(onStage))
		for _, p := range onStage {
			slots = append(slots, domain.Slot{Participant: p, Role: domain.RoleCell})
		}
		return slots
	}
}
