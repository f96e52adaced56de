package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/khabri/internal/api"
	"github.com/gravitrone/khabri/internal/store"
	"github.com/gravitrone/khabri/internal/ui/components"
)

// ListCmd returns the `khabri list` command.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := refresh(ctxOf(cmd), s.Store); err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), s.Store.Records())
			return nil
		},
	}
}

// AddCmd returns the `khabri add` command.
func AddCmd() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf := store.EditBuffer{Title: title, Content: content}
			if err := buf.Validate(); err != nil {
				return err
			}

			s, err := Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Store.Run(ctxOf(cmd), s.Store.Submit(buf, store.Creating())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", title)
			printRecords(cmd.OutOrStdout(), s.Store.Records())
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "student name")
	cmd.Flags().StringVarP(&content, "content", "c", "", "details, e.g. class and roll number")
	return cmd
}

// UpdateCmd returns the `khabri update <id>` command.
func UpdateCmd() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := api.ParseRecordID(args[0])
			if err != nil {
				return err
			}

			s, err := Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := refresh(ctxOf(cmd), s.Store); err != nil {
				return err
			}
			rec, ok := s.Store.Find(id)
			if !ok {
				return fmt.Errorf("student %s not found", id)
			}

			s.Store.BeginEdit(rec)
			if cmd.Flags().Changed("title") {
				s.Store.SetTitle(title)
			}
			if cmd.Flags().Changed("content") {
				s.Store.SetContent(content)
			}
			if err := s.Store.Buffer().Validate(); err != nil {
				return err
			}

			if err := s.Store.Run(ctxOf(cmd), s.Store.SubmitBuffer()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", id)
			printRecords(cmd.OutOrStdout(), s.Store.Records())
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new student name")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new details")
	return cmd
}

// DeleteCmd returns the `khabri delete <id>` command.
func DeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := api.ParseRecordID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete this student?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			s, err := Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Store.Run(ctxOf(cmd), s.Store.Remove(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			printRecords(cmd.OutOrStdout(), s.Store.Records())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// Confirm asks a yes/no question and blocks for the answer. Anything but
// y or yes is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func refresh(ctx context.Context, st *store.Store) error {
	return st.Run(ctx, st.Refresh())
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printRecords(out io.Writer, records []api.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "no students found")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "  %-6s  %s  (%s)\n",
			rec.ID,
			components.SanitizeOneLine(rec.Title),
			components.SanitizeOneLine(rec.Content),
		)
	}
}
