package opportunityapimodels

import (
	"sales-pipeline-backend/models"
	apimodels "sales-pipeline-backend/models/api"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
)

type StageConditionData struct {
	ConditionPropertyID string                        `json:"condition_property_id"` // ид условия из справочника
	Title               models.ConditionPropertyTitle `json:"title"`                 // название условия
	ComparisonOperator  models.ComparisonOperator     `json:"comparison_operator"`   // = или ≠
	CompareData         string                        `json:"compare_data"`          // значение для сравнения
}

func (s StageConditionData) Validate() error {
	if s.ConditionPropertyID == "" {
		return errors.New("не указано условие этапа")
	}
	if !s.ComparisonOperator.IsValid() {
		return errors.Errorf("недопустимый оператор сравнения: %v", s.ComparisonOperator)
	}
	return nil
}

type StageConfigData struct {
	CompanyID       string                 `json:"company_id"`       // ид компании
	Indicator       string                 `json:"indicator"`        // название этапа
	Description     string                 `json:"description"`      // описание
	WinRate         float64                `json:"win_rate"`         // вероятность выигрыша, %
	LogicalOperator models.LogicalOperator `json:"logical_operator"` // AND/OR
	Conditions      []StageConditionData   `json:"conditions"`       // условия этапа
	IsClosedLost    bool                   `json:"is_closed_lost"`   // этап проигрыша
	IsDelivery      bool                   `json:"is_delivery"`      // этап поставки
	IsDealClosed    bool                   `json:"is_deal_closed"`   // этап заключения сделки
}

func (s StageConfigData) Validate() error {
	if s.CompanyID == "" {
		return errors.New("не указана компания")
	}
	if s.Indicator == "" {
		return errors.New("не указано название этапа")
	}
	if s.WinRate < 0 || s.WinRate > 100 {
		return errors.New("вероятность выигрыша должна быть в диапазоне от 0 до 100")
	}
	if !s.LogicalOperator.IsValid() {
		return errors.Errorf("недопустимый логический оператор: %v", s.LogicalOperator)
	}
	if len(s.Conditions) == 0 {
		return errors.New("не указаны условия этапа")
	}
	for _, condition := range s.Conditions {
		if err := condition.Validate(); err != nil {
			return err
		}
	}
	flags := 0
	for _, flag := range []bool{s.IsClosedLost, s.IsDelivery, s.IsDealClosed} {
		if flag {
			flags++
		}
	}
	if flags > 1 {
		return errors.New("этап может быть только одним из: проигрыш, поставка, заключение сделки")
	}
	return nil
}

type StageConfigView struct {
	StageConfigData
	ID        string `json:"id"`
	IsDefault bool   `json:"is_default"`
}

func StageConfigConvert(rec dbmodels.StageConfig) StageConfigView {
	conditions := make([]StageConditionData, 0, len(rec.Conditions))
	for _, condition := range rec.Conditions {
		conditions = append(conditions, StageConditionData{
			ConditionPropertyID: condition.ConditionProperty.ID,
			Title:               condition.ConditionProperty.Title,
			ComparisonOperator:  condition.ComparisonOperator,
			CompareData:         condition.CompareData,
		})
	}
	return StageConfigView{
		StageConfigData: StageConfigData{
			CompanyID:       rec.CompanyID,
			Indicator:       rec.Indicator,
			Description:     rec.Description,
			WinRate:         rec.WinRate,
			LogicalOperator: rec.LogicalOperator,
			Conditions:      conditions,
			IsClosedLost:    rec.IsClosedLost,
			IsDelivery:      rec.IsDelivery,
			IsDealClosed:    rec.IsDealClosed,
		},
		ID:        rec.ID,
		IsDefault: rec.IsDefault,
	}
}

type StageConfigFilter struct {
	apimodels.Pagination
	CompanyID string `json:"company_id"`
}

func (f StageConfigFilter) Validate() error {
	if f.CompanyID == "" {
		return errors.New("не указана компания")
	}
	return nil
}

type CompanyRequest struct {
	CompanyID string `json:"company_id"`
}

func (c CompanyRequest) Validate() error {
	if c.CompanyID == "" {
		return errors.New("не указана компания")
	}
	return nil
}

// OpportunityStageView - пройденный этап сделки
type OpportunityStageView struct {
	StageID    string  `json:"stage_id"`
	Indicator  string  `json:"indicator"`
	WinRate    float64 `json:"win_rate"`
	StageOrder int     `json:"stage_order"`
	IsCurrent  bool    `json:"is_current"`
}

func OpportunityStageConvert(rec dbmodels.OpportunityStage) OpportunityStageView {
	result := OpportunityStageView{
		StageID:    rec.StageID,
		StageOrder: rec.StageOrder,
		IsCurrent:  rec.IsCurrent,
	}
	if rec.Stage != nil {
		result.Indicator = rec.Stage.Indicator
		result.WinRate = rec.Stage.WinRate
	}
	return result
}

// StageResolutionView - результат пересчета этапа сделки
type StageResolutionView struct {
	OpportunityID  string                 `json:"opportunity_id"`
	WinRate        float64                `json:"win_rate"`
	CurrentStageID string                 `json:"current_stage_id"`
	Stages         []OpportunityStageView `json:"stages"`
}
