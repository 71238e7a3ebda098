// dbinfo inspects a GopherGrades database from the command line: schema
// layout, department abbreviations, and quick per-course statistics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "dbinfo",
		Short:         "Inspect a GopherGrades database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "data/gopherGrades.db", "path to the grades database")

	root.AddCommand(newSchemaCmd(&dbPath))
	root.AddCommand(newDeptsCmd(&dbPath))
	root.AddCommand(newCourseCmd(&dbPath))

	return root
}

func newSchemaCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print tables, columns, row counts, and relationships",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := context.Background()

			tables, err := s.Tables(ctx)
			if err != nil {
				return err
			}

			var relationships []string
			for _, name := range tables {
				info, err := s.TableInfo(ctx, name)
				if err != nil {
					return err
				}

				color.Cyan("\nTable: %s (%d rows)", info.Name, info.RowCount)
				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Column", "Type", "Flags"})
				for _, col := range info.Columns {
					var flags []string
					if col.PrimaryKey {
						flags = append(flags, "PK")
					}
					if col.NotNull {
						flags = append(flags, "NOT NULL")
					}
					if col.Default != nil {
						flags = append(flags, "DEFAULT "+*col.Default)
					}
					table.Append([]string{col.Name, col.Type, strings.Join(flags, ", ")})
				}
				table.Render()

				for _, fk := range info.ForeignKeys {
					relationships = append(relationships,
						fmt.Sprintf("%s.%s -> %s.%s", info.Name, fk.FromColumn, fk.Table, fk.ToColumn))
				}
			}

			if len(relationships) > 0 {
				color.Yellow("\nRelationships")
				for _, rel := range relationships {
					fmt.Println("  " + rel)
				}
			}
			return nil
		},
	}
}

func newDeptsCmd(dbPath *string) *cobra.Command {
	var jsonOut string

	cmd := &cobra.Command{
		Use:   "depts",
		Short: "List department abbreviations and names",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.DepartmentNames(context.Background())
			if err != nil {
				return err
			}

			if jsonOut != "" {
				data, err := json.MarshalIndent(names, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding departments: %w", err)
				}
				if err := os.WriteFile(jsonOut, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", jsonOut, err)
				}
				color.Green("Wrote %d departments to %s", len(names), jsonOut)
				return nil
			}

			abbrs := make([]string, 0, len(names))
			for abbr := range names {
				abbrs = append(abbrs, abbr)
			}
			sort.Strings(abbrs)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Abbr", "Department"})
			for _, abbr := range abbrs {
				table.Append([]string{abbr, names[abbr]})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the listing to a JSON file instead")

	return cmd
}

func newCourseCmd(dbPath *string) *cobra.Command {
	var campus string

	cmd := &cobra.Command{
		Use:   "course DEPT NUMBER",
		Short: "Print aggregate grade statistics for one course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			course, err := s.GetCourse(context.Background(), campus, args[0], args[1])
			if err != nil {
				return err
			}
			stats := gradestats.Compute(course.TotalGrades)

			color.Cyan("%s %s — %s", course.DeptAbbr, course.CourseNum, course.Name)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Metric", "Value"})
			table.Append([]string{"Total students", fmt.Sprintf("%d", stats.TotalStudents)})
			table.Append([]string{"Graded students", fmt.Sprintf("%d", stats.TotalGradedStudents)})
			table.Append([]string{"Average GPA", formatFloat(stats.AverageGPA)})
			table.Append([]string{"Pass rate", formatPct(stats.PassRate)})
			table.Append([]string{"Withdrawal rate", formatPct(stats.WithdrawalRate)})
			table.Append([]string{"A rate", formatPct(stats.GradeRates.A)})
			table.Append([]string{"B rate", formatPct(stats.GradeRates.B)})
			table.Append([]string{"C rate", formatPct(stats.GradeRates.C)})
			table.Append([]string{"D rate", formatPct(stats.GradeRates.D)})
			table.Append([]string{"F rate", formatPct(stats.GradeRates.F)})
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&campus, "campus", "UMNTC", "campus code")

	return cmd
}

func formatFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}

func formatPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v)
}
