package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusquest/internal/task"
)

func TestMergeTasksMemoryWinsOnTextAndDueDate(t *testing.T) {
	mem := []task.Task{
		{ID: "mem-1", Text: "Buy milk", DueDate: "2024-01-01", Priority: task.PriorityHigh},
	}
	file := []task.Task{
		{ID: "file-1", Text: "Buy milk", DueDate: "2024-01-01", Priority: task.PriorityLow},
	}

	merged := MergeTasks(file, mem)

	require.Len(t, merged, 1, "matching tasks collapse to one entry")
	assert.Equal(t, "mem-1", merged[0].ID)
	assert.Equal(t, task.PriorityHigh, merged[0].Priority, "the in-memory version wins wholesale")
}

func TestMergeTasksMatchesByIDFirst(t *testing.T) {
	mem := []task.Task{
		{ID: "shared", Text: "renamed locally", DueDate: "2024-03-01"},
	}
	file := []task.Task{
		{ID: "shared", Text: "old name", DueDate: "2024-02-01"},
		{ID: "other", Text: "renamed locally", DueDate: "2024-03-01"},
	}

	merged := MergeTasks(file, mem)

	require.Len(t, merged, 2)
	assert.Equal(t, "renamed locally", merged[0].Text, "the id match is replaced in place")
	assert.Equal(t, "other", merged[1].ID, "the text match is not consumed when an id match exists")
	assert.Equal(t, "2024-03-01", merged[1].DueDate)
}

func TestMergeTasksAppendsUnmatched(t *testing.T) {
	mem := []task.Task{
		{ID: "m1", Text: "only in memory"},
	}
	file := []task.Task{
		{ID: "f1", Text: "only in file"},
	}

	merged := MergeTasks(file, mem)

	require.Len(t, merged, 2)
	assert.Equal(t, "f1", merged[0].ID, "file entries keep their positions")
	assert.Equal(t, "m1", merged[1].ID, "unmatched in-memory entries are appended")
}

func TestMergeTasksEmptySides(t *testing.T) {
	mem := []task.Task{{ID: "m1", Text: "a"}}

	assert.Len(t, MergeTasks(nil, mem), 1)
	assert.Len(t, MergeTasks(mem, nil), 1)
	assert.Empty(t, MergeTasks(nil, nil))
}

func TestMergeTasksClonesInputs(t *testing.T) {
	mem := []task.Task{{ID: "m1", Text: "a", Subtasks: []task.Subtask{{ID: "s1", Text: "sub"}}}}

	merged := MergeTasks(nil, mem)
	merged[0].Subtasks[0].Completed = true

	assert.False(t, mem[0].Subtasks[0].Completed, "merge output must not alias the inputs")
}

func TestMergeCategories(t *testing.T) {
	file := []string{"Work", "Garden", "Work"}
	mem := []string{"Personal", "Work", "Study"}

	merged := MergeCategories(file, mem)

	assert.Equal(t, []string{"Work", "Garden", "Personal", "Study"}, merged)
}
