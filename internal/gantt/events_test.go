package gantt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/i18n"
)

func TestDispatchTaskMoved(t *testing.T) {
	mut := &fakeMutator{}
	h := NewHandler(mut, nil, "3", i18n.Japanese, nil)
	task := WidgetTask{ID: 2, Text: "t", StartDate: "2024-01-01 09:00", EndDate: "2024-01-03 18:00", Duration: 2, Progress: 0.5}

	require.NoError(t, h.Dispatch(context.Background(), TaskMoved{Task: task, Mode: DragResize}))
	require.Len(t, mut.updates, 1)
	u := mut.updates[0]
	assert.Equal(t, 2, u.id)
	assert.Equal(t, 16.0, *u.in.EstimatedHours)
	assert.Equal(t, 50, *u.in.ProgressPercentage)
	assert.Equal(t, "2024-01-03 18:00", u.in.EndDate.String())
}

func TestDispatchLinkAddedDefaultsLag(t *testing.T) {
	mut := &fakeMutator{}
	h := NewHandler(mut, nil, "3", i18n.Japanese, nil)

	require.NoError(t, h.Dispatch(context.Background(), LinkAdded{Link: WidgetLink{Source: 1, Target: 2, Type: "0", Lag: 4}}))
	require.Len(t, mut.creates, 1)
	assert.Zero(t, mut.creates[0].LagDays)
	assert.Equal(t, "finish_to_start", string(mut.creates[0].DependencyType))
}

func TestDispatchLinkRemovedAsksFirst(t *testing.T) {
	mut := &fakeMutator{}
	confirm := &fakeConfirmer{answer: false}
	h := NewHandler(mut, confirm, "3", i18n.Japanese, nil)

	err := h.Dispatch(context.Background(), LinkRemoved{Link: WidgetLink{ID: 8}})
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Empty(t, mut.deletes)
	assert.Equal(t, []string{"この依存関係を削除しますか？"}, confirm.asked)

	confirm.answer = true
	require.NoError(t, h.Dispatch(context.Background(), LinkRemoved{Link: WidgetLink{ID: 8}}))
	assert.Equal(t, []int{8}, mut.deletes)
}

func TestDispatchWithoutConfirmerDeclines(t *testing.T) {
	mut := &fakeMutator{}
	h := NewHandler(mut, nil, "3", i18n.Japanese, nil)
	assert.ErrorIs(t, h.Dispatch(context.Background(), LinkRemoved{Link: WidgetLink{ID: 8}}), ErrDeclined)
	assert.Empty(t, mut.deletes)
}
