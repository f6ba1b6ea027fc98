// libradeskctl is the operator tool: it seeds a fresh database, imports
// books in bulk from CSV, and dumps reports without starting the shell.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"libradesk/library"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "libradeskctl",
		Short:         "LibraDesk administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to yaml config file")

	root.AddCommand(seedCmd(), importBooksCmd(), overdueCmd(), historyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openManager() (*library.LibraryManager, func(), error) {
	cfg, err := library.LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}
	logger, flush := library.SetupLogging(cfg)
	mgr, err := library.NewLibraryManager(cfg, logger)
	if err != nil {
		flush()
		return nil, nil, err
	}
	cleanup := func() {
		mgr.Close()
		flush()
	}
	return mgr, cleanup, nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo members and books if the catalog is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cleanup, err := openManager()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := mgr.SeedIfEmpty(); err != nil {
				return err
			}
			fmt.Println("Seed complete.")
			return nil
		},
	}
}

func importBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-books <csv-file>",
		Short: "Bulk-import books from a CSV of title,author,genre,isbn,copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cleanup, err := openManager()
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			reader := csv.NewReader(f)
			reader.FieldsPerRecord = 5

			successCount := 0
			errorCount := 0
			line := 0
			for {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				line++
				if err != nil {
					fmt.Printf("line %d: ERROR - %v\n", line, err)
					errorCount++
					continue
				}
				// Tolerate a header row.
				if line == 1 && strings.EqualFold(record[0], "title") {
					continue
				}

				available, err := strconv.Atoi(strings.TrimSpace(record[4]))
				if err != nil {
					fmt.Printf("line %d: ERROR - bad copy count %q\n", line, record[4])
					errorCount++
					continue
				}

				title := strings.TrimSpace(record[0])
				fmt.Printf("Importing: %s by %s... ", title, strings.TrimSpace(record[1]))
				id, err := mgr.AddBook(library.RoleAdmin, title,
					strings.TrimSpace(record[1]), strings.TrimSpace(record[2]),
					strings.TrimSpace(record[3]), available)
				if err != nil {
					fmt.Printf("ERROR - %v\n", err)
					errorCount++
					continue
				}
				fmt.Printf("SUCCESS (ID: %d)\n", id)
				successCount++
			}

			fmt.Printf("\nImport complete!\n")
			fmt.Printf("Successfully imported: %d books\n", successCount)
			fmt.Printf("Errors: %d\n", errorCount)
			return nil
		},
	}
}

func overdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cleanup, err := openManager()
			if err != nil {
				return err
			}
			defer cleanup()

			overdue, err := mgr.Overdue()
			if err != nil {
				return err
			}
			if len(overdue) == 0 {
				fmt.Println("Nothing overdue.")
				return nil
			}
			fmt.Printf("%-25s %-30s %s\n", "Member", "Book", "Days Overdue")
			fmt.Println(strings.Repeat("-", 70))
			for _, o := range overdue {
				fmt.Printf("%-25s %-30s %d\n", o.MemberName, o.BookTitle, o.DaysOverdue)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Dump the full transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cleanup, err := openManager()
			if err != nil {
				return err
			}
			defer cleanup()

			loans, err := mgr.History()
			if err != nil {
				return err
			}
			fmt.Printf("%-6s %-25s %-30s %-12s %-12s %s\n", "TX", "Member", "Book", "Due", "Returned", "Fine")
			fmt.Println(strings.Repeat("-", 95))
			for _, l := range loans {
				returned := "-"
				if l.ReturnDate.Valid {
					returned = l.ReturnDate.Time.Format("2006-01-02")
				}
				fmt.Printf("%-6d %-25s %-30s %-12s %-12s %d\n",
					l.ID, l.MemberName, l.BookTitle,
					l.DueDate.Format("2006-01-02"), returned, l.Fine)
			}
			return nil
		},
	}
}
