package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/empdirectory/internal/models"
)

func printEmployees(w io.Writer, list []models.Employee) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAST NAME\tFIRST NAME\tTITLE\tOFFICE\tDEPARTMENT")
	for _, e := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.LastName, e.FirstName, e.Title, e.Office, e.Department)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d employee(s)\n", len(list))
	return err
}

func printEmployee(w io.Writer, e *models.Employee) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", e.FullName())
	fmt.Fprintf(tw, "Title:\t%s\n", e.Title)
	fmt.Fprintf(tw, "Office:\t%s\n", e.Office)
	fmt.Fprintf(tw, "Department:\t%s\n", e.Department)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	return tw.Flush()
}

func printValues(w io.Writer, values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
