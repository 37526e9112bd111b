package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// csvHeader is the historical evaluation column set; downstream spreadsheets
// key on these names.
var csvHeader = []string{
	"Board",
	"Algorithm",
	"Avg_Time_s",
	"Avg_Memory_KB",
	"Avg_Nodes_Expanded",
	"Avg_Solution_Length",
	"Solution_Found",
	"Num_Runs",
}

// WriteTable renders the aggregates as an aligned text table.
func WriteTable(w io.Writer, aggregates []*Aggregate) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "BOARD\tALGORITHM\tTIME\tMEMORY\tEXPANDED\tMOVES\tCOST\tFOUND")
	for _, a := range aggregates {
		found := "yes"
		if !a.Found {
			found = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4fs\t%.1fKB\t%.0f\t%.0f\t%.0f\t%s\n",
			a.Board, a.Strategy, a.AvgSeconds, a.AvgAllocKB,
			a.AvgExpanded, a.AvgMoves, a.AvgCost, found)
	}
	return tw.Flush()
}

// WriteCSV writes the aggregates in the historical CSV layout, header first.
func WriteCSV(w io.Writer, aggregates []*Aggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range aggregates {
		found := "Yes"
		if !a.Found {
			found = "No"
		}
		// The historical files carried whole node and length counts
		record := []string{
			a.Board,
			a.Strategy,
			strconv.FormatFloat(a.AvgSeconds, 'f', 6, 64),
			strconv.FormatFloat(a.AvgAllocKB, 'f', 2, 64),
			strconv.Itoa(int(a.AvgExpanded)),
			strconv.Itoa(int(a.AvgMoves)),
			found,
			strconv.Itoa(a.Runs),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
