package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"semtrack/internal/docstore"
)

var (
	taskSemester string
	taskSubject  string
	taskDue      string
	taskTitle    string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a subject",
	Long: `List, add, complete, edit and delete tasks. Tasks are addressed by
their position in the list, as shown by 'task list'.`,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks of a subject",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Append a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [index]",
	Short: "Toggle a task's completed state",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [index]",
	Short: "Change a task's title or due date",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [index]",
	Short: "Remove a task; later tasks shift down",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskCmd.PersistentFlags().StringVarP(&taskSemester, "semester", "s", "", "semester the subject belongs to")
	taskCmd.PersistentFlags().StringVar(&taskSubject, "subject", "", "subject the task belongs to")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "due date, YYYY-MM-DD")
	taskEditCmd.Flags().StringVar(&taskDue, "due", "", "new due date, YYYY-MM-DD")
	taskEditCmd.Flags().StringVar(&taskTitle, "title", "", "new title")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

type taskInput struct {
	Semester string `validate:"required"`
	Subject  string `validate:"required"`
	Title    string `validate:"required"`
	DueDate  string `validate:"required,datetime=2006-01-02"`
}

func taskScope() (semester, subject string, err error) {
	semester, err = currentSemester(taskSemester)
	if err != nil {
		return "", "", err
	}
	if taskSubject == "" {
		return "", "", fmt.Errorf("no subject given: pass --subject")
	}
	return semester, taskSubject, nil
}

// taskAt fetches the current task list and checks the index up front.
// The store itself skips bad indices silently; the CLI is the place
// where the user hears about it.
func taskAt(store *docstore.Store, cmd *cobra.Command, semester, subject, arg string) (int, []docstore.Task, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, nil, fmt.Errorf("task index must be a number, got %q", arg)
	}

	record := store.SemesterData(cmd.Context(), semester)
	subjectRecord, ok := record[subject]
	if !ok {
		return 0, nil, fmt.Errorf("no subject %q in %q", subject, semester)
	}
	if index < 0 || index >= len(subjectRecord.Tasks) {
		return 0, nil, fmt.Errorf("no task %d in %q (have %d)", index, subject, len(subjectRecord.Tasks))
	}
	return index, subjectRecord.Tasks, nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	semester, subject, err := taskScope()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	record := store.SemesterData(cmd.Context(), semester)
	tasks := record[subject].Tasks
	if len(tasks) == 0 {
		fmt.Fprintf(out, "No tasks in %s/%s yet.\n", semester, subject)
		return nil
	}

	for i, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "%3d [%s] %s  (due %s)\n", i, mark, task.Title, task.DueDate)
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	semester, subject, err := taskScope()
	if err != nil {
		return err
	}

	input := taskInput{Semester: semester, Subject: subject, Title: args[0], DueDate: taskDue}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	task := docstore.Task{Title: args[0], DueDate: taskDue}
	if err := store.AddTask(cmd.Context(), semester, subject, task); err != nil {
		return err
	}
	cmd.Printf("Added task %q to %s/%s\n", args[0], semester, subject)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	semester, subject, err := taskScope()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	index, tasks, err := taskAt(store, cmd, semester, subject, args[0])
	if err != nil {
		return err
	}

	if err := store.ToggleTaskCompletion(cmd.Context(), semester, subject, index); err != nil {
		return err
	}

	state := "open"
	if !tasks[index].Completed {
		state = "done"
	}
	cmd.Printf("Marked task %d %s\n", index, state)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	semester, subject, err := taskScope()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	index, tasks, err := taskAt(store, cmd, semester, subject, args[0])
	if err != nil {
		return err
	}

	task := tasks[index]
	if taskTitle != "" {
		task.Title = taskTitle
	}
	if taskDue != "" {
		task.DueDate = taskDue
	}

	input := taskInput{Semester: semester, Subject: subject, Title: task.Title, DueDate: task.DueDate}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := store.UpdateTask(cmd.Context(), semester, subject, index, task); err != nil {
		return err
	}
	cmd.Printf("Updated task %d\n", index)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	semester, subject, err := taskScope()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	index, _, err := taskAt(store, cmd, semester, subject, args[0])
	if err != nil {
		return err
	}

	if err := store.DeleteTask(cmd.Context(), semester, subject, index); err != nil {
		return err
	}
	cmd.Printf("Deleted task %d\n", index)
	return nil
}
