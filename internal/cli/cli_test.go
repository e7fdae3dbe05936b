package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semtrack/internal/docstore"
	"semtrack/internal/kvstore"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
}

// runCommand executes the CLI against a fixed store, capturing output.
func runCommand(t *testing.T, store *docstore.Store, args ...string) (string, error) {
	t.Helper()

	restore := openStore
	openStore = func() (*docstore.Store, error) { return store, nil }
	t.Cleanup(func() { openStore = restore })

	// flag variables are package-level; clear leftovers from earlier runs
	configFile, dataDir, databaseURL, backendName = "", "", "", ""
	subjectSemester, subjectColor = "", ""
	taskSemester, taskSubject, taskDue, taskTitle = "", "", "", ""
	exportFormat, exportOutput = "json", ""
	initProject, initBackend, initForce = "", "file", false

	root := NewRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func newCLIStore() *docstore.Store {
	return docstore.New(kvstore.NewMemory())
}

func TestSemesterCommands(t *testing.T) {
	t.Run("add then list", func(t *testing.T) {
		store := newCLIStore()

		_, err := runCommand(t, store, "semester", "add", "WS24")
		require.NoError(t, err)

		out, err := runCommand(t, store, "semester", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "WS24")
	})

	t.Run("empty list prints a hint", func(t *testing.T) {
		out, err := runCommand(t, newCLIStore(), "semester", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No semesters yet")
	})

	t.Run("rename onto an existing name fails", func(t *testing.T) {
		store := newCLIStore()
		ctx := context.Background()
		require.NoError(t, store.AddSemester(ctx, "WS24"))
		require.NoError(t, store.AddSemester(ctx, "SS25"))

		_, err := runCommand(t, store, "semester", "rename", "WS24", "SS25")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("delete removes the semester", func(t *testing.T) {
		store := newCLIStore()
		require.NoError(t, store.AddSemester(context.Background(), "WS24"))

		_, err := runCommand(t, store, "semester", "delete", "WS24")
		require.NoError(t, err)
		assert.Empty(t, store.SemesterNames(context.Background()))
	})
}

func TestSubjectCommands(t *testing.T) {
	t.Run("add requires a semester", func(t *testing.T) {
		_, err := runCommand(t, newCLIStore(), "subject", "add", "Math")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no semester given")
	})

	t.Run("add with color", func(t *testing.T) {
		store := newCLIStore()

		_, err := runCommand(t, store, "subject", "add", "Math", "-s", "WS24", "--color", "#FF6B6B")
		require.NoError(t, err)

		record := store.SemesterData(context.Background(), "WS24")
		require.Contains(t, record, "Math")
		assert.Equal(t, "#FF6B6B", record["Math"].ColorTag)
	})

	t.Run("rejects a malformed color", func(t *testing.T) {
		_, err := runCommand(t, newCLIStore(), "subject", "add", "Math", "-s", "WS24", "--color", "red")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid subject")
	})

	t.Run("list shows color and task counts", func(t *testing.T) {
		store := newCLIStore()
		ctx := context.Background()
		require.NoError(t, store.AddSubject(ctx, "WS24", "Math", "#FF6B6B"))
		require.NoError(t, store.AddTask(ctx, "WS24", "Math", docstore.Task{Title: "HW1", DueDate: "2025-01-10"}))

		out, err := runCommand(t, store, "subject", "list", "-s", "WS24")
		require.NoError(t, err)
		assert.Contains(t, out, "#FF6B6B Math")
		assert.Contains(t, out, "1 tasks, 1 open")
	})
}

func TestTaskCommands(t *testing.T) {
	seed := func(t *testing.T) *docstore.Store {
		store := newCLIStore()
		ctx := context.Background()
		require.NoError(t, store.AddSubject(ctx, "WS24", "Math", "#FF6B6B"))
		require.NoError(t, store.AddTask(ctx, "WS24", "Math", docstore.Task{Title: "HW1", DueDate: "2025-01-10"}))
		return store
	}

	t.Run("add validates the due date", func(t *testing.T) {
		_, err := runCommand(t, newCLIStore(), "task", "add", "HW1",
			"-s", "WS24", "--subject", "Math", "--due", "tomorrow")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid task")
	})

	t.Run("add then list", func(t *testing.T) {
		store := newCLIStore()

		_, err := runCommand(t, store, "task", "add", "HW1",
			"-s", "WS24", "--subject", "Math", "--due", "2025-01-10")
		require.NoError(t, err)

		out, err := runCommand(t, store, "task", "list", "-s", "WS24", "--subject", "Math")
		require.NoError(t, err)
		assert.Contains(t, out, "[ ] HW1")
		assert.Contains(t, out, "due 2025-01-10")
	})

	t.Run("done toggles completion", func(t *testing.T) {
		store := seed(t)

		_, err := runCommand(t, store, "task", "done", "0", "-s", "WS24", "--subject", "Math")
		require.NoError(t, err)
		assert.True(t, store.SemesterData(context.Background(), "WS24")["Math"].Tasks[0].Completed)

		out, err := runCommand(t, store, "task", "list", "-s", "WS24", "--subject", "Math")
		require.NoError(t, err)
		assert.Contains(t, out, "[x] HW1")
	})

	t.Run("done rejects an out-of-range index", func(t *testing.T) {
		_, err := runCommand(t, seed(t), "task", "done", "5", "-s", "WS24", "--subject", "Math")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no task 5")
	})

	t.Run("edit changes only the given fields", func(t *testing.T) {
		store := seed(t)

		_, err := runCommand(t, store, "task", "edit", "0",
			"-s", "WS24", "--subject", "Math", "--title", "HW1 v2")
		require.NoError(t, err)

		task := store.SemesterData(context.Background(), "WS24")["Math"].Tasks[0]
		assert.Equal(t, "HW1 v2", task.Title)
		assert.Equal(t, "2025-01-10", task.DueDate)
	})

	t.Run("delete removes the task but keeps the subject", func(t *testing.T) {
		store := seed(t)

		_, err := runCommand(t, store, "task", "delete", "0", "-s", "WS24", "--subject", "Math")
		require.NoError(t, err)

		record := store.SemesterData(context.Background(), "WS24")
		require.Contains(t, record, "Math")
		assert.Empty(t, record["Math"].Tasks)
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("json report to stdout", func(t *testing.T) {
		store := newCLIStore()
		ctx := context.Background()
		require.NoError(t, store.AddSemester(ctx, "WS24"))
		require.NoError(t, store.AddTask(ctx, "WS24", "Math", docstore.Task{Title: "HW1", DueDate: "2025-01-10"}))

		out, err := runCommand(t, store, "export", "WS24")
		require.NoError(t, err)
		assert.Contains(t, out, "HW1")
	})

	t.Run("pdf needs an output file", func(t *testing.T) {
		_, err := runCommand(t, newCLIStore(), "export", "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output")
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("writes semtrack.yaml", func(t *testing.T) {
		chdir(t, t.TempDir())

		out, err := runCommand(t, newCLIStore(), "init", "--project", "uni")
		require.NoError(t, err)
		assert.Contains(t, out, "Created semtrack.yaml")

		config, err := LoadConfig("semtrack.yaml")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "uni", config.Project)
		assert.Equal(t, "file", config.Storage.Backend)
	})

	t.Run("refuses to overwrite without --force", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := runCommand(t, newCLIStore(), "init")
		require.NoError(t, err)

		_, err = runCommand(t, newCLIStore(), "init")
		require.Error(t, err)

		_, err = runCommand(t, newCLIStore(), "init", "--force")
		require.NoError(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, newCLIStore(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "semtrack")
}
