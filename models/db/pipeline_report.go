package dbmodels

import "github.com/shopspring/decimal"

// PipelineStageTotal - строка сводки воронки по текущему этапу
type PipelineStageTotal struct {
	StageID     *string
	Indicator   string
	WinRate     float64
	Total       int64
	BudgetTotal decimal.Decimal
}
