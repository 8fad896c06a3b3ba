package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/olekukonko/tablewriter"
)

// TableRenderer prints the same sections as TextRenderer, with list sections drawn as tables.
type TableRenderer struct {
	*TextRenderer
	w io.Writer
}

func NewTableRenderer(w io.Writer, title string, colored bool) *TableRenderer {
	return &TableRenderer{
		TextRenderer: NewTextRenderer(w, title, colored),
		w:            w,
	}
}

func (r *TableRenderer) table(header []string, rows [][]string) error {
	if err := r.p.flush(); err != nil {
		return err
	}

	t := tablewriter.NewWriter(r.w)
	t.SetHeader(header)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.AppendBulk(rows)
	t.Render()
	return nil
}

func (r *TableRenderer) Basic(s models.BasicStats) error {
	r.basicOverview(s)
	r.p.println("\nPayment Distribution:")

	rows := make([][]string, 0, len(s.Payments))
	for _, ps := range s.Payments {
		rows = append(rows, []string{
			ps.PaymentType,
			strconv.Itoa(ps.Count),
			fmt.Sprintf("%.1f%%", ps.Percentage),
		})
	}
	return r.table([]string{"Payment type", "Rides", "Share"}, rows)
}

func (r *TableRenderer) PeakHours(ph models.PeakHours) error {
	r.peakOverview(ph)
	r.p.println("\nPeak hours by day:")

	rows := make([][]string, 0, len(ph.Slots))
	for _, s := range ph.Slots {
		rows = append(rows, []string{
			s.DayOfWeek,
			fmt.Sprintf("%02d:00", s.Hour),
			strconv.Itoa(s.TotalRides),
		})
	}
	return r.table([]string{"Day", "Hour", "Rides"}, rows)
}

func (r *TableRenderer) TopDrivers(td models.TopDrivers) error {
	r.p.section("TOP DRIVERS ANALYSIS")
	r.p.printf("\nTop %d Drivers by Rating:\n", td.Limit)

	rows := make([][]string, 0, len(td.Drivers))
	for _, d := range td.Drivers {
		rows = append(rows, []string{
			d.Name,
			fmt.Sprintf("%.1f", d.Rating),
			strconv.Itoa(d.TotalRides),
			strconv.Itoa(d.RidesInDataset),
		})
	}
	return r.table([]string{"Driver", "Rating", "Total rides", "Rides in dataset"}, rows)
}
