// Package docstore owns the persisted semester/subject/task document.
// Every mutation is a full read-modify-write cycle against the byte
// store: load the whole document, change one subtree, write the whole
// document back. There is no transaction log and no concurrent-writer
// protection; full replacement is what keeps the document internally
// consistent for the single active writer this tool assumes.
package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"semtrack/internal/kvstore"
	"semtrack/internal/logger"
	"semtrack/pkg/palette"
)

// Persisted keys in the byte store.
const (
	// DocumentKey holds the root document.
	DocumentKey = "@semester_task_manager"
	// IndexKey holds the ordered list of semester names. The index is
	// authoritative for listing order and is independent of whether a
	// name currently has an entry in the document.
	IndexKey = "@semesters_list"
)

// Store exposes typed CRUD over the single persisted document.
type Store struct {
	kv  kvstore.Store
	log logger.Logger
}

// New creates a document store over the given byte store.
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv, log: logger.Store()}
}

// LoadDocument reads and parses the persisted document. Absent or
// unparsable data degrades to an empty document so the tool always
// boots into a usable state.
func (s *Store) LoadDocument(ctx context.Context) Document {
	data, err := s.kv.Get(ctx, DocumentKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.log.Warn("failed to read document, starting empty: %v", err)
		}
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("failed to parse document, starting empty: %v", err)
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc.Normalize()
}

// SaveDocument serializes and persists the document wholesale. Write
// failures are logged and swallowed; the previously persisted state
// stays in place.
func (s *Store) SaveDocument(ctx context.Context, doc Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Error("failed to serialize document: %v", err)
		return
	}
	if err := s.kv.Set(ctx, DocumentKey, data); err != nil {
		s.log.Error("failed to persist document: %v", err)
	}
}

// SemesterNames returns the ordered semester-name index.
func (s *Store) SemesterNames(ctx context.Context) []string {
	data, err := s.kv.Get(ctx, IndexKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.log.Warn("failed to read semester index, starting empty: %v", err)
		}
		return []string{}
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		s.log.Warn("failed to parse semester index, starting empty: %v", err)
		return []string{}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

func (s *Store) saveNames(ctx context.Context, names []string) {
	data, err := json.Marshal(names)
	if err != nil {
		s.log.Error("failed to serialize semester index: %v", err)
		return
	}
	if err := s.kv.Set(ctx, IndexKey, data); err != nil {
		s.log.Error("failed to persist semester index: %v", err)
	}
}

// AddSemester appends name to the semester index. Adding a name that
// is already present is a no-op, not an error.
func (s *Store) AddSemester(ctx context.Context, name string) error {
	names := s.SemesterNames(ctx)
	if indexOf(names, name) >= 0 {
		s.log.Debug("semester %q already exists, skipping add", name)
		return nil
	}
	s.saveNames(ctx, append(names, name))
	return nil
}

// RenameSemester moves a semester's index entry and document subtree
// from old to new. Renaming onto an existing different name fails with
// ErrDuplicateName and changes nothing.
func (s *Store) RenameSemester(ctx context.Context, oldName, newName string) error {
	names := s.SemesterNames(ctx)
	if newName != oldName && indexOf(names, newName) >= 0 {
		return &Error{Op: "rename semester", Key: newName, Err: ErrDuplicateName}
	}
	if newName == oldName {
		return nil
	}

	if i := indexOf(names, oldName); i >= 0 {
		names[i] = newName
	} else {
		names = append(names, newName)
	}
	s.saveNames(ctx, names)

	doc := s.LoadDocument(ctx)
	if record, ok := doc[oldName]; ok {
		doc[newName] = record
		delete(doc, oldName)
		s.SaveDocument(ctx, doc)
	}
	return nil
}

// DeleteSemester removes name from the index and deletes its whole
// subtree. No-op if the name is unknown.
func (s *Store) DeleteSemester(ctx context.Context, name string) error {
	names := s.SemesterNames(ctx)
	if i := indexOf(names, name); i >= 0 {
		s.saveNames(ctx, append(names[:i], names[i+1:]...))
	}

	doc := s.LoadDocument(ctx)
	if _, ok := doc[name]; ok {
		delete(doc, name)
		s.SaveDocument(ctx, doc)
	}
	return nil
}

// SemesterData returns the semester's record, or an empty record when
// the semester holds no data yet. Never fails.
func (s *Store) SemesterData(ctx context.Context, name string) SemesterRecord {
	doc := s.LoadDocument(ctx)
	if record, ok := doc[name]; ok {
		return record
	}
	return SemesterRecord{}
}

// AddSubject inserts a new subject with an empty task list. The
// semester entry is created implicitly if absent. Adding an existing
// subject is a no-op and does not update its color.
func (s *Store) AddSubject(ctx context.Context, semester, name, colorTag string) error {
	doc := s.LoadDocument(ctx)
	record := doc[semester]
	if record == nil {
		record = SemesterRecord{}
	}

	if _, exists := record[name]; exists {
		s.log.Debug("subject %q already exists in %q, skipping add", name, semester)
		return nil
	}

	if colorTag == "" {
		colorTag = palette.DefaultColor
	}
	record[name] = SubjectRecord{ColorTag: colorTag, Tasks: []Task{}}
	doc[semester] = record
	s.SaveDocument(ctx, doc)
	return nil
}

// RenameSubject moves a subject's task list under a new name and sets
// its color tag. Renaming onto an existing different name fails with
// ErrDuplicateName. Renaming a subject to its own name updates only
// the color.
func (s *Store) RenameSubject(ctx context.Context, semester, oldName, newName, colorTag string) error {
	doc := s.LoadDocument(ctx)
	record := doc[semester]
	if record == nil {
		record = SemesterRecord{}
	}

	if newName != oldName {
		if _, exists := record[newName]; exists {
			return &Error{Op: "rename subject", Key: newName, Err: ErrDuplicateName}
		}
	}

	subject := record[oldName]
	if subject.Tasks == nil {
		subject.Tasks = []Task{}
	}
	if colorTag != "" {
		subject.ColorTag = colorTag
	} else if subject.ColorTag == "" {
		subject.ColorTag = palette.DefaultColor
	}

	delete(record, oldName)
	record[newName] = subject
	doc[semester] = record
	s.SaveDocument(ctx, doc)
	return nil
}

// DeleteSubject removes the subject and all of its tasks. No-op if
// absent.
func (s *Store) DeleteSubject(ctx context.Context, semester, name string) error {
	doc := s.LoadDocument(ctx)
	record, ok := doc[semester]
	if !ok {
		return nil
	}
	if _, exists := record[name]; !exists {
		return nil
	}

	delete(record, name)
	s.SaveDocument(ctx, doc)
	return nil
}

// AddTask appends a task to the subject's list, creating the subject
// with the default color if it does not exist yet. Ordering is append
// order.
func (s *Store) AddTask(ctx context.Context, semester, subjectName string, task Task) error {
	doc := s.LoadDocument(ctx)
	record := doc[semester]
	if record == nil {
		record = SemesterRecord{}
	}

	subject, ok := record[subjectName]
	if !ok {
		subject = SubjectRecord{ColorTag: palette.DefaultColor, Tasks: []Task{}}
	}
	subject.Tasks = append(subject.Tasks, task)

	record[subjectName] = subject
	doc[semester] = record
	s.SaveDocument(ctx, doc)
	return nil
}

// UpdateTask replaces the task at index. Unknown subject or an index
// out of range is skipped silently; callers must not rely on this as
// correctness feedback.
func (s *Store) UpdateTask(ctx context.Context, semester, subjectName string, index int, task Task) error {
	doc := s.LoadDocument(ctx)
	subject, ok := doc[semester][subjectName]
	if !ok || index < 0 || index >= len(subject.Tasks) {
		s.log.Debug("update skipped: %s/%s has no task %d", semester, subjectName, index)
		return nil
	}

	subject.Tasks[index] = task
	doc[semester][subjectName] = subject
	s.SaveDocument(ctx, doc)
	return nil
}

// DeleteTask removes the task at index, shifting later tasks down by
// one. Unknown subject or an index out of range is a no-op.
func (s *Store) DeleteTask(ctx context.Context, semester, subjectName string, index int) error {
	doc := s.LoadDocument(ctx)
	subject, ok := doc[semester][subjectName]
	if !ok || index < 0 || index >= len(subject.Tasks) {
		s.log.Debug("delete skipped: %s/%s has no task %d", semester, subjectName, index)
		return nil
	}

	subject.Tasks = append(subject.Tasks[:index], subject.Tasks[index+1:]...)
	doc[semester][subjectName] = subject
	s.SaveDocument(ctx, doc)
	return nil
}

// ToggleTaskCompletion flips the completed flag of the task at index.
// Unknown subject or an index out of range is a no-op.
func (s *Store) ToggleTaskCompletion(ctx context.Context, semester, subjectName string, index int) error {
	doc := s.LoadDocument(ctx)
	subject, ok := doc[semester][subjectName]
	if !ok || index < 0 || index >= len(subject.Tasks) {
		s.log.Debug("toggle skipped: %s/%s has no task %d", semester, subjectName, index)
		return nil
	}

	subject.Tasks[index].Completed = !subject.Tasks[index].Completed
	doc[semester][subjectName] = subject
	s.SaveDocument(ctx, doc)
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
