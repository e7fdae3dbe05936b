package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"semtrack/internal/docstore"
)

var semesterCmd = &cobra.Command{
	Use:   "semester",
	Short: "Manage semesters",
	Long:  "List, add, rename and delete semesters. Deleting a semester removes all of its subjects and tasks.",
}

var semesterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List semesters in insertion order",
	RunE:  runSemesterList,
}

var semesterAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a semester",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemesterAdd,
}

var semesterRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a semester, keeping its subjects and tasks",
	Args:  cobra.ExactArgs(2),
	RunE:  runSemesterRename,
}

var semesterDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a semester and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemesterDelete,
}

func init() {
	semesterCmd.AddCommand(semesterListCmd)
	semesterCmd.AddCommand(semesterAddCmd)
	semesterCmd.AddCommand(semesterRenameCmd)
	semesterCmd.AddCommand(semesterDeleteCmd)
}

type nameInput struct {
	Name string `validate:"required"`
}

func runSemesterList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names := store.SemesterNames(cmd.Context())
	if len(names) == 0 {
		fmt.Fprintln(out, "No semesters yet. Add one with 'semtrack semester add'.")
		return nil
	}

	for _, name := range names {
		record := store.SemesterData(cmd.Context(), name)
		tasks := 0
		for _, subject := range record {
			tasks += len(subject.Tasks)
		}
		fmt.Fprintf(out, "%s  (%d subjects, %d tasks)\n", name, len(record), tasks)
	}
	return nil
}

func runSemesterAdd(cmd *cobra.Command, args []string) error {
	if err := validate.Struct(nameInput{Name: args[0]}); err != nil {
		return fmt.Errorf("invalid semester name: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.AddSemester(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Added semester %q\n", args[0])
	return nil
}

func runSemesterRename(cmd *cobra.Command, args []string) error {
	if err := validate.Struct(nameInput{Name: args[1]}); err != nil {
		return fmt.Errorf("invalid semester name: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.RenameSemester(cmd.Context(), args[0], args[1]); err != nil {
		if errors.Is(err, docstore.ErrDuplicateName) {
			return fmt.Errorf("a semester named %q already exists", args[1])
		}
		return err
	}
	cmd.Printf("Renamed semester %q to %q\n", args[0], args[1])
	return nil
}

func runSemesterDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.DeleteSemester(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted semester %q\n", args[0])
	return nil
}
