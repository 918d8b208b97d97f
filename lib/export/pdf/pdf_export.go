package pdfexport

import (
	"bytes"
	"fmt"
	reportapimodels "sales-pipeline-backend/models/api/report"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const fontFamily = "Arial"

var (
	pipelineHeaders = []string{"Этап", "Вероятность, %", "Сделок", "Бюджет", "С учетом вероятности"}
	columnWidths    = []float64{80, 35, 30, 60, 65}
)

// GeneratePipeline формирует сводку воронки продаж. В fontDir должны лежать Arial.ttf и "Arial Bold.ttf"
func GeneratePipeline(fontDir, title string, summary reportapimodels.PipelineSummary, created time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GeneratePipeline panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", fontDir)
	pdf.AddUTF8Font(fontFamily, "", "Arial.ttf")
	pdf.AddUTF8Font(fontFamily, "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		return nil, errors.Wrap(pdf.Error(), "ошибка загрузки шрифтов")
	}
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Сформировано: %v", created.Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for idx, header := range pipelineHeaders {
		pdf.CellFormat(columnWidths[idx], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 11)
	for _, row := range summary.Rows {
		writeRow(pdf, []string{
			row.Indicator,
			fmt.Sprintf("%v", row.WinRate),
			fmt.Sprintf("%v", row.Total),
			row.BudgetTotal.StringFixed(2),
			row.WeightedBudget.StringFixed(2),
		})
	}
	pdf.SetFont(fontFamily, "B", 11)
	writeRow(pdf, []string{
		"Итого",
		"",
		fmt.Sprintf("%v", summary.Total),
		summary.BudgetTotal.StringFixed(2),
		summary.WeightedBudget.StringFixed(2),
	})

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, values []string) {
	for idx, value := range values {
		align := "R"
		if idx == 0 {
			align = "L"
		}
		pdf.CellFormat(columnWidths[idx], 7, value, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
