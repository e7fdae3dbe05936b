package docstore

import "semtrack/pkg/palette"

// Task is a single to-do item inside a subject. Tasks carry no id of
// their own; identity is the position in the owning subject's list.
type Task struct {
	Title     string `json:"title"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

// SubjectRecord holds a subject's color tag and its ordered tasks.
type SubjectRecord struct {
	ColorTag string `json:"colorTag"`
	Tasks    []Task `json:"tasks"`
}

// SemesterRecord maps subject name to subject record.
type SemesterRecord map[string]SubjectRecord

// Document is the root persisted structure, keyed by semester name.
type Document map[string]SemesterRecord

// Normalize fills defaults into records that were persisted without
// them. A missing colorTag or tasks list is old or hand-edited data,
// not corruption.
func (d Document) Normalize() Document {
	for _, semester := range d {
		for name, subject := range semester {
			changed := false
			if subject.ColorTag == "" {
				subject.ColorTag = palette.DefaultColor
				changed = true
			}
			if subject.Tasks == nil {
				subject.Tasks = []Task{}
				changed = true
			}
			if changed {
				semester[name] = subject
			}
		}
	}
	return d
}
