package services

import (
	"bytes"
	"fmt"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderTimetablePDF renders an exam plan's task schedule as a printable
// timetable.
func RenderTimetablePDF(plan *models.ExamPlan) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.Cell(0, 10, plan.ExamName)
	doc.Ln(8)
	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("%s - exam on %s - progress %d%%",
		plan.Subject, plan.ExamDate.Format("2006-01-02"), plan.Progress))
	doc.Ln(12)

	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(15, 8, "Day", "1", 0, "C", true, 0, "")
	doc.CellFormat(30, 8, "Date", "1", 0, "C", true, 0, "")
	doc.CellFormat(85, 8, "Topic", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Minutes", "1", 0, "C", true, 0, "")
	doc.CellFormat(25, 8, "Done", "1", 1, "C", true, 0, "")

	doc.SetFont("Arial", "", 10)
	for _, task := range plan.StudyTasks {
		done := ""
		if task.Completed {
			done = "x"
		}
		doc.CellFormat(15, 7, fmt.Sprintf("%d", task.Day), "1", 0, "C", false, 0, "")
		doc.CellFormat(30, 7, task.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		doc.CellFormat(85, 7, task.Topic, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%d", task.Duration), "1", 0, "C", false, 0, "")
		doc.CellFormat(25, 7, done, "1", 1, "C", false, 0, "")
	}

	if len(plan.StudyTasks) == 0 && plan.PlanOverview != "" {
		doc.MultiCell(0, 6, plan.PlanOverview, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}
