package publish

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasklist/internal/listview"
	"tasklist/internal/model"
)

// WriteTasksPDF writes a one-column A4 report of tasks to w.
func WriteTasksPDF(w io.Writer, tasks []model.Task, opt RenderOptions) error {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Tasks"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	rows := listview.Visible(listview.ApplyFilter(listview.Render(tasks), opt.Filter))
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No tasks.")
		return pdf.Output(w)
	}

	for _, r := range rows {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		red, green, blue := priorityRGB(r.Task.Priority)
		pdf.SetTextColor(red, green, blue)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(box+" "+r.Task.Text+" ("+string(r.Task.Priority)+")"), "0", "L", false)

		pdf.SetTextColor(90, 90, 90)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(listview.Meta(r.Task)), "0", "L", false)
		pdf.Ln(2)
	}
	pdf.SetTextColor(0, 0, 0)
	return pdf.Output(w)
}

func priorityRGB(p model.Priority) (int, int, int) {
	switch p {
	case model.PriorityHigh:
		return 200, 40, 40
	case model.PriorityLow:
		return 40, 140, 60
	default:
		return 200, 130, 20
	}
}
