package reconcile

import "focusquest/internal/task"

// MergeTasks unions a file task list with the in-memory list. The file
// list is the base; each in-memory task replaces its match (by id first,
// then by exact text plus due-date equality) in place, and unmatched
// in-memory tasks are appended. In-memory state wins wholesale on
// conflict; no field-level merge is attempted.
func MergeTasks(fileTasks, memTasks []task.Task) []task.Task {
	merged := make([]task.Task, len(fileTasks))
	for i := range fileTasks {
		merged[i] = fileTasks[i].Clone()
	}

	for _, mem := range memTasks {
		idx := matchIndex(merged, mem)
		if idx >= 0 {
			merged[idx] = mem.Clone()
			continue
		}
		merged = append(merged, mem.Clone())
	}
	return merged
}

// matchIndex finds the base entry matching a task: by identifier first,
// else by exact text plus due-date equality.
func matchIndex(base []task.Task, t task.Task) int {
	for i := range base {
		if base[i].ID == t.ID {
			return i
		}
	}
	for i := range base {
		if base[i].Text == t.Text && base[i].DueDate == t.DueDate {
			return i
		}
	}
	return -1
}

// MergeCategories unions two category lists, preserving the order of
// first occurrence with the file list leading.
func MergeCategories(fileCats, memCats []string) []string {
	seen := make(map[string]bool, len(fileCats)+len(memCats))
	var merged []string
	for _, c := range fileCats {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	for _, c := range memCats {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged
}
