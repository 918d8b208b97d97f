package reportapimodels

import (
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ExportFormat string

const (
	ExportXlsx ExportFormat = "xlsx"
	ExportPdf  ExportFormat = "pdf"
)

func (f ExportFormat) Validate() error {
	if f != ExportXlsx && f != ExportPdf {
		return errors.Errorf("неподдерживаемый формат выгрузки: %v", f)
	}
	return nil
}

type PipelineFilter struct {
	CompanyID     string `json:"company_id"`     // ид компании
	IncludeClosed bool   `json:"include_closed"` // учитывать закрытые сделки
	SalePersonID  string `json:"sale_person_id"` // фильтр по ответственному
}

func (p PipelineFilter) Validate() error {
	if p.CompanyID == "" {
		return errors.New("не указана компания")
	}
	return nil
}

type PipelineRow struct {
	StageID        string          `json:"stage_id"`
	Indicator      string          `json:"indicator"`
	WinRate        float64         `json:"win_rate"`
	Total          int64           `json:"total"`           // кол-во сделок на этапе
	BudgetTotal    decimal.Decimal `json:"budget_total"`    // сумма бюджетов
	WeightedBudget decimal.Decimal `json:"weighted_budget"` // сумма бюджетов с учетом вероятности
}

type PipelineSummary struct {
	Rows           []PipelineRow   `json:"rows"`
	Total          int64           `json:"total"`
	BudgetTotal    decimal.Decimal `json:"budget_total"`
	WeightedBudget decimal.Decimal `json:"weighted_budget"`
}

const noStageIndicator = "Этап не определен"

var hundred = decimal.NewFromInt(100)

func PipelineRowConvert(rec dbmodels.PipelineStageTotal) PipelineRow {
	row := PipelineRow{
		Indicator:   rec.Indicator,
		WinRate:     rec.WinRate,
		Total:       rec.Total,
		BudgetTotal: rec.BudgetTotal,
	}
	if rec.StageID != nil {
		row.StageID = *rec.StageID
	}
	if row.Indicator == "" {
		row.Indicator = noStageIndicator
	}
	row.WeightedBudget = rec.BudgetTotal.
		Mul(decimal.NewFromFloat(rec.WinRate)).
		Div(hundred).
		Round(2)
	return row
}

func PipelineSummaryConvert(list []dbmodels.PipelineStageTotal) PipelineSummary {
	result := PipelineSummary{
		Rows:           make([]PipelineRow, 0, len(list)),
		BudgetTotal:    decimal.Zero,
		WeightedBudget: decimal.Zero,
	}
	for _, rec := range list {
		row := PipelineRowConvert(rec)
		result.Rows = append(result.Rows, row)
		result.Total += row.Total
		result.BudgetTotal = result.BudgetTotal.Add(row.BudgetTotal)
		result.WeightedBudget = result.WeightedBudget.Add(row.WeightedBudget)
	}
	return result
}

type ArchiveView struct {
	FileName string `json:"file_name"`
	Url      string `json:"url"` // временная ссылка на скачивание
}
