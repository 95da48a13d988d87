package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"leadconsole/internal/console"
)

type filterOutput struct {
	Params map[string]string `json:"params"`
	State  console.Snapshot  `json:"state"`
}

// render prints lead results as a table when asked to; everything else is
// JSON.
func render(w io.Writer, out any, table bool) error {
	if table {
		switch v := out.(type) {
		case console.Snapshot:
			return printLeadTable(w, v)
		case filterOutput:
			return printLeadTable(w, v.State)
		}
	}
	return printJSON(w, out)
}

func printLeadTable(w io.Writer, snap console.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLOCATION\tSTATUS\tSOURCE\tSCORE")
	fmt.Fprintln(tw, "--\t----\t-----\t--------\t------\t------\t-----")
	for _, l := range snap.Leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.FullName(), l.Email, l.Location(), l.Status, l.Source, l.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if snap.ShowFooter {
		_, err := fmt.Fprintf(w, "\npage %d of %d (%d leads, %d per page)\n", snap.Page, snap.TotalPages, snap.Total, snap.PageSize)
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d leads\n", len(snap.Leads))
	return err
}
