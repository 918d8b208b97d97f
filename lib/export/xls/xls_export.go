package xlsexport

import (
	"bytes"
	reportapimodels "sales-pipeline-backend/models/api/report"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportPipeline(summary reportapimodels.PipelineSummary) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const SheetName = "Воронка"

var pipelineHeaders = []string{"Этап", "Вероятность выигрыша, %", "Кол-во сделок", "Бюджет", "Бюджет с учетом вероятности"}

// колонки с суммами
const (
	budgetCol   = 4
	weightedCol = 5
)

func (i impl) ExportPipeline(summary reportapimodels.PipelineSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := f.GetSheetName(0)
	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания стилей xlsx")
	}
	if err = writeHeader(f, sheet, styles, pipelineHeaders); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	row, err := writePipelineData(f, sheet, styles, summary.Rows)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = writeTotal(f, sheet, styles, summary, row+1); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования итогов в xlsx")
	}
	if err = f.SetSheetName(sheet, SheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

// writePipelineData пишет строки со второй, возвращает номер последней заполненной строки
func writePipelineData(f *excelize.File, sheet string, styles sheetStyles, list []reportapimodels.PipelineRow) (int, error) {
	row := 1
	if len(list) == 0 {
		return row, nil
	}
	for _, item := range list {
		row++
		err := writeRow(f, sheet, row, []interface{}{
			item.Indicator,
			item.WinRate,
			item.Total,
			item.BudgetTotal.InexactFloat64(),
			item.WeightedBudget.InexactFloat64(),
		})
		if err != nil {
			return row, err
		}
	}
	if err := setStyle(f, sheet, styles.text, 1, 2, budgetCol-1, row); err != nil {
		return row, err
	}
	return row, setStyle(f, sheet, styles.money, budgetCol, 2, weightedCol, row)
}

func writeTotal(f *excelize.File, sheet string, styles sheetStyles, summary reportapimodels.PipelineSummary, row int) error {
	err := writeRow(f, sheet, row, []interface{}{
		"Итого",
		nil,
		summary.Total,
		summary.BudgetTotal.InexactFloat64(),
		summary.WeightedBudget.InexactFloat64(),
	})
	if err != nil {
		return err
	}
	return setStyle(f, sheet, styles.total, 1, row, len(pipelineHeaders), row)
}
