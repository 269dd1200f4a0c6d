package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/core/domain"
)

func cam(id string, ordinal int, onStage bool) *domain.Participant {
	return &domain.Participant{
		ID:      domain.ParticipantID(id),
		Kind:    domain.KindCamera,
		OnStage: onStage,
		Ordinal: ordinal,
	}
}

func screen(id string, ordinal int) *domain.Participant {
	return &domain.Participant{
		ID:      domain.ParticipantID(id),
		Kind:    domain.KindScreen,
		OnStage: true,
		Ordinal: ordinal,
	}
}

func slotIDs(slots []domain.Slot) []domain.ParticipantID {
	ids := make([]domain.ParticipantID, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.Participant.ID)
	}
	return ids
}

func TestCompose_EmptyStage(t *testing.T) {
	assert.Nil(t, Compose(nil, domain.LayoutGrid))
	assert.Nil(t, Compose([]*domain.Participant{cam("p1", 0, false)}, domain.LayoutGrid))
}

func TestCompose_GridKeepsInsertionOrder(t *testing.T) {
	participants := []*domain.Participant{
		cam("p1", 0, true),
		cam("p2", 1, true),
		cam("p3", 2, false),
		cam("p4", 3, true),
	}

	slots := Compose(participants, domain.LayoutGrid)

	require.Len(t, slots, 3)
	assert.Equal(t, []domain.ParticipantID{"p1", "p2", "p4"}, slotIDs(slots))
	for _, s := range slots {
		assert.Equal(t, domain.RoleCell, s.Role)
	}
}

func TestCompose_ScreenShareSortsFirst(t *testing.T) {
	participants := []*domain.Participant{
		cam("p1", 0, true),
		cam("p2", 1, true),
		screen("share", 2),
	}

	slots := Compose(participants, domain.LayoutGrid)

	require.Len(t, slots, 3)
	assert.Equal(t, []domain.ParticipantID{"share", "p1", "p2"}, slotIDs(slots))
}

func TestCompose_SidebarRoles(t *testing.T) {
	participants := []*domain.Participant{
		cam("p1", 0, true),
		screen("share", 1),
		cam("p2", 2, true),
	}

	slots := Compose(participants, domain.LayoutSidebar)

	require.Len(t, slots, 3)
	assert.Equal(t, domain.ParticipantID("share"), slots[0].Participant.ID)
	assert.Equal(t, domain.RolePrimary, slots[0].Role)
	assert.Equal(t, domain.RoleSecondary, slots[1].Role)
	assert.Equal(t, domain.RoleSecondary, slots[2].Role)
}

func TestCompose_SpotlightShowsOneSlot(t *testing.T) {
	participants := []*domain.Participant{
		cam("p1", 0, true),
		cam("p2", 1, true),
		cam("p3", 2, true),
	}

	for _, layout := range []domain.LayoutMode{domain.LayoutSpotlight, domain.LayoutSolo} {
		slots := Compose(participants, layout)
		require.Len(t, slots, 1, "layout %s", layout)
		assert.Equal(t, domain.ParticipantID("p1"), slots[0].Participant.ID)
		assert.Equal(t, domain.RolePrimary, slots[0].Role)
	}
}

func TestCompose_IsPure(t *testing.T) {
	participants := []*domain.Participant{
		cam("p2", 1, true),
		cam("p1", 0, true),
	}

	first := Compose(participants, domain.LayoutGrid)
	second := Compose(participants, domain.LayoutGrid)

	assert.Equal(t, first, second)
	// Input order is untouched.
	assert.Equal(t, domain.ParticipantID("p2"), participants[0].ID)
}

func TestGridColumns(t *testing.T) {
	tests := []struct {
		slots int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
		{9, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.GridColumns(tt.slots), "slots=%d", tt.slots)
	}
}
