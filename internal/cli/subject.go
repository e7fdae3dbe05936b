package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"semtrack/internal/docstore"
	"semtrack/pkg/palette"
)

var (
	subjectSemester string
	subjectColor    string
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage subjects within a semester",
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects of a semester",
	RunE:  runSubjectList,
}

var subjectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectAdd,
}

var subjectRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a subject, keeping its task list",
	Long: `Rename a subject. The task list moves to the new name; --color sets
the new color tag. Renaming a subject to its current name only changes
the color.`,
	Args: cobra.ExactArgs(2),
	RunE: runSubjectRename,
}

var subjectDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a subject and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectDelete,
}

func init() {
	subjectCmd.PersistentFlags().StringVarP(&subjectSemester, "semester", "s", "", "semester the subject belongs to")
	subjectAddCmd.Flags().StringVar(&subjectColor, "color", "", "hex color tag, e.g. #4ECDC4")
	subjectRenameCmd.Flags().StringVar(&subjectColor, "color", "", "hex color tag, e.g. #4ECDC4")

	subjectCmd.AddCommand(subjectListCmd)
	subjectCmd.AddCommand(subjectAddCmd)
	subjectCmd.AddCommand(subjectRenameCmd)
	subjectCmd.AddCommand(subjectDeleteCmd)
}

type subjectInput struct {
	Semester string `validate:"required"`
	Name     string `validate:"required"`
	Color    string `validate:"omitempty,hexcolor"`
}

// currentSemester resolves the --semester flag against the configured
// default.
func currentSemester(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg != nil && cfg.Defaults.Semester != "" {
		return cfg.Defaults.Semester, nil
	}
	return "", fmt.Errorf("no semester given: pass --semester or set defaults.semester in semtrack.yaml")
}

func runSubjectList(cmd *cobra.Command, args []string) error {
	semester, err := currentSemester(subjectSemester)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	record := store.SemesterData(cmd.Context(), semester)
	if len(record) == 0 {
		fmt.Fprintf(out, "No subjects in %q yet.\n", semester)
		return nil
	}

	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		subject := record[name]
		open := 0
		for _, task := range subject.Tasks {
			if !task.Completed {
				open++
			}
		}
		fmt.Fprintf(out, "%s %s  (%d tasks, %d open)\n", subject.ColorTag, name, len(subject.Tasks), open)
	}
	return nil
}

func runSubjectAdd(cmd *cobra.Command, args []string) error {
	semester, err := currentSemester(subjectSemester)
	if err != nil {
		return err
	}

	input := subjectInput{Semester: semester, Name: args[0], Color: subjectColor}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid subject: %w", err)
	}

	color := subjectColor
	if color == "" {
		color = cfg.Defaults.Color
	} else if !palette.Contains(color) {
		cmd.Printf("Note: %s is not one of the standard palette colors\n", color)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.AddSubject(cmd.Context(), semester, args[0], color); err != nil {
		return err
	}
	cmd.Printf("Added subject %q to %q\n", args[0], semester)
	return nil
}

func runSubjectRename(cmd *cobra.Command, args []string) error {
	semester, err := currentSemester(subjectSemester)
	if err != nil {
		return err
	}

	input := subjectInput{Semester: semester, Name: args[1], Color: subjectColor}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid subject: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.RenameSubject(cmd.Context(), semester, args[0], args[1], subjectColor); err != nil {
		if errors.Is(err, docstore.ErrDuplicateName) {
			return fmt.Errorf("a subject named %q already exists in %q", args[1], semester)
		}
		return err
	}
	cmd.Printf("Renamed subject %q to %q\n", args[0], args[1])
	return nil
}

func runSubjectDelete(cmd *cobra.Command, args []string) error {
	semester, err := currentSemester(subjectSemester)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.DeleteSubject(cmd.Context(), semester, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted subject %q from %q\n", args[0], semester)
	return nil
}
