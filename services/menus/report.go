package menus

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type HallOutcome struct {
	Hall  string
	Err   error
	Empty bool
}

func (h HallOutcome) Status() string {
	switch {
	case h.Err != nil:
		return fmt.Sprintf("error: %v", h.Err)
	case h.Empty:
		return "empty"
	default:
		return "ok"
	}
}

type DateOutcome struct {
	Date         string
	Halls        []HallOutcome
	Wrote        bool
	SkippedWrite bool
	WriteErr     error
}

type RunReport struct {
	Started  time.Time
	Finished time.Time
	Deleted  []string
	Dates    []DateOutcome
}

// TotalOutage reports whether every hall attempt across every date
// failed with an error, the signature of the scraper being blocked or
// the site changing out from under us.
func (r RunReport) TotalOutage() bool {
	attempts := 0
	for _, date := range r.Dates {
		for _, hall := range date.Halls {
			attempts++
			if hall.Err == nil {
				return false
			}
		}
	}
	return attempts > 0
}

func (r RunReport) Render() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Date", "Hall", "Status"})
	for _, date := range r.Dates {
		for _, hall := range date.Halls {
			t.AppendRow(table.Row{date.Date, hall.Hall, hall.Status()})
		}
		switch {
		case date.WriteErr != nil:
			t.AppendRow(table.Row{date.Date, "", fmt.Sprintf("write failed: %v", date.WriteErr)})
		case date.SkippedWrite:
			t.AppendRow(table.Row{date.Date, "", "write skipped (no data)"})
		case date.Wrote:
			t.AppendRow(table.Row{date.Date, "", "written"})
		}
		t.AppendSeparator()
	}

	out := t.Render()
	if len(r.Deleted) > 0 {
		out += fmt.Sprintf("\nswept %d stale document(s): %v", len(r.Deleted), r.Deleted)
	}
	out += fmt.Sprintf("\nrun took %s", r.Finished.Sub(r.Started).Round(time.Millisecond))
	return out
}
