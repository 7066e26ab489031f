package services

import (
	"strings"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FilterTasks derives the visible task list. The status filter is applied
// first, then the search term, which matches case-insensitively against the
// title or the description. An empty term matches everything. The input is
// never modified and the relative order of tasks is preserved.
func FilterTasks(tasks []models.Task, searchTerm string, status models.StatusFilter) []models.Task {
	// A Caser carries state and must not be shared.
	folder := cases.Fold()
	term := fold(folder, searchTerm)

	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if !status.Matches(task) {
			continue
		}
		if term != "" &&
			!strings.Contains(fold(folder, task.Title), term) &&
			!strings.Contains(fold(folder, task.Description), term) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func fold(c cases.Caser, s string) string {
	return c.String(norm.NFC.String(s))
}
