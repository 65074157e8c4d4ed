package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func sampleTree() []*Subtask {
	return []*Subtask{
		{ID: "a", Title: "Outline", Children: []*Subtask{
			{ID: "a1", Title: "Intro", Done: true},
			{ID: "a2", Title: "Body", Children: []*Subtask{
				{ID: "a2x", Title: "Charts"},
			}},
		}},
		{ID: "b", Title: "Review"},
	}
}

func TestSubtaskIndexGet(t *testing.T) {
	ix := NewSubtaskIndex(sampleTree())

	n, ok := ix.Get("a2x")
	require.True(t, ok)
	assert.Equal(t, "Charts", n.Title)

	_, ok = ix.Get("missing")
	assert.False(t, ok)
}

func TestSubtaskIndexToggle(t *testing.T) {
	ix := NewSubtaskIndex(sampleTree())

	done, err := ix.Toggle("b")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = ix.Toggle("b")
	require.NoError(t, err)
	assert.False(t, done)

	_, err = ix.Toggle("missing")
	assert.Error(t, err)
}

func TestSubtaskIndexAdd(t *testing.T) {
	ix := NewSubtaskIndex(sampleTree())

	require.NoError(t, ix.Add("a2x", &Subtask{ID: "deep", Title: "Legend"}))
	n, ok := ix.Get("deep")
	require.True(t, ok)
	assert.Equal(t, "Legend", n.Title)

	require.NoError(t, ix.Add("", &Subtask{ID: "c", Title: "Publish"}))
	assert.Len(t, ix.Roots(), 3)

	assert.Error(t, ix.Add("", &Subtask{ID: "b"}), "duplicate id")
	assert.Error(t, ix.Add("missing", &Subtask{ID: "d"}))
}

func TestSubtaskIndexRemoveSubtree(t *testing.T) {
	ix := NewSubtaskIndex(sampleTree())

	require.NoError(t, ix.Remove("a2"))

	_, ok := ix.Get("a2")
	assert.False(t, ok)
	_, ok = ix.Get("a2x")
	assert.False(t, ok, "descendants leave the index with their parent")

	n, ok := ix.Get("a")
	require.True(t, ok)
	assert.Len(t, n.Children, 1)

	require.NoError(t, ix.Remove("b"))
	assert.Len(t, ix.Roots(), 1)
}

func TestSubtaskIndexProgress(t *testing.T) {
	ix := NewSubtaskIndex(sampleTree())

	done, total := ix.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 4, total)

	_, err := ix.Toggle("a2x")
	require.NoError(t, err)
	done, total = ix.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 4, total)
}

func TestTaskCloneIsDeep(t *testing.T) {
	due := mustParse(t, "2024-05-06T09:00:00Z")
	projectID := 3
	task := &Task{
		TaskID:    1,
		Title:     "Plan",
		Status:    TaskTodo,
		DueDate:   &due,
		ProjectID: &projectID,
		Subtasks:  sampleTree(),
	}

	clone := task.Clone()
	clone.Subtasks[0].Children[0].Done = false
	*clone.DueDate = due.AddDate(0, 0, 1)
	*clone.ProjectID = 99

	assert.True(t, task.Subtasks[0].Children[0].Done)
	assert.Equal(t, due, *task.DueDate)
	assert.Equal(t, 3, *task.ProjectID)
}
