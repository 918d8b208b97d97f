package opportunityapimodels

import (
	apimodels "sales-pipeline-backend/models/api"
	dbmodels "sales-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type OpportunityData struct {
	CompanyID          string          `json:"company_id"`           // ид компании
	Code               string          `json:"code"`                 // номер сделки
	Title              string          `json:"title"`                // название
	CustomerID         string          `json:"customer_id"`          // ид клиента
	ProductCategoryIDs []string        `json:"product_category_ids"` // категории продуктов
	BudgetValue        decimal.Decimal `json:"budget_value"`         // бюджет
	OpenDate           *time.Time      `json:"open_date"`            // дата открытия
	CloseDate          *time.Time      `json:"close_date"`           // ожидаемая дата закрытия
	DecisionMakerID    string          `json:"decision_maker_id"`    // ид лица, принимающего решение
	LostByOtherReason  bool            `json:"lost_by_other_reason"` // проиграна по другой причине
	IsDealClose        bool            `json:"is_deal_close"`        // сделка заключена
	QuotationID        string          `json:"quotation_id"`         // ид коммерческого предложения
	SaleOrderID        string          `json:"sale_order_id"`        // ид заказа
	SalePersonID       string          `json:"sale_person_id"`       // ид ответственного
	SalePersonEmail    string          `json:"sale_person_email"`    // почта ответственного
}

func (o OpportunityData) Validate() error {
	if o.CompanyID == "" {
		return errors.New("не указана компания")
	}
	if o.Title == "" {
		return errors.New("не указано название сделки")
	}
	if o.BudgetValue.IsNegative() {
		return errors.New("бюджет не может быть отрицательным")
	}
	if o.OpenDate != nil && o.CloseDate != nil && o.CloseDate.Before(*o.OpenDate) {
		return errors.New("дата закрытия раньше даты открытия")
	}
	if o.LostByOtherReason && o.IsDealClose {
		return errors.New("сделка не может быть одновременно заключена и проиграна")
	}
	return nil
}

type OpportunityView struct {
	OpportunityData
	ID             string            `json:"id"`
	IsClosed       bool              `json:"is_closed"`
	WinRate        float64           `json:"win_rate"`         // вероятность выигрыша текущего этапа
	CurrentStageID string            `json:"current_stage_id"` // ид текущего этапа
	CurrentStage   string            `json:"current_stage"`    // название текущего этапа
	ProductLines   []ProductLineData `json:"product_lines"`
	Competitors    []CompetitorData  `json:"competitors"`
	CreatedAt      time.Time         `json:"created_at"`
}

func OpportunityConvert(rec dbmodels.Opportunity) OpportunityView {
	result := OpportunityView{
		OpportunityData: OpportunityData{
			CompanyID:          rec.CompanyID,
			Code:               rec.Code,
			Title:              rec.Title,
			ProductCategoryIDs: rec.ProductCategoryIDs,
			BudgetValue:        rec.BudgetValue,
			OpenDate:           rec.OpenDate,
			CloseDate:          rec.CloseDate,
			LostByOtherReason:  rec.LostByOtherReason,
			IsDealClose:        rec.IsDealClose,
			SalePersonID:       rec.SalePersonID,
			SalePersonEmail:    rec.SalePersonEmail,
		},
		ID:           rec.ID,
		IsClosed:     rec.IsClosed,
		WinRate:      rec.WinRate,
		ProductLines: make([]ProductLineData, 0, len(rec.ProductLines)),
		Competitors:  make([]CompetitorData, 0, len(rec.Competitors)),
		CreatedAt:    rec.CreatedAt,
	}
	if rec.CustomerID != nil {
		result.CustomerID = *rec.CustomerID
	}
	if rec.DecisionMakerID != nil {
		result.DecisionMakerID = *rec.DecisionMakerID
	}
	if rec.QuotationID != nil {
		result.QuotationID = *rec.QuotationID
	}
	if rec.SaleOrderID != nil {
		result.SaleOrderID = *rec.SaleOrderID
	}
	if rec.CurrentStageID != nil {
		result.CurrentStageID = *rec.CurrentStageID
	}
	if rec.CurrentStage != nil {
		result.CurrentStage = rec.CurrentStage.Indicator
	}
	for _, line := range rec.ProductLines {
		result.ProductLines = append(result.ProductLines, ProductLineConvert(line))
	}
	for _, competitor := range rec.Competitors {
		result.Competitors = append(result.Competitors, CompetitorConvert(competitor))
	}
	return result
}

type ProductLineData struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (p ProductLineData) Validate() error {
	if p.ProductID == "" {
		return errors.New("не указан продукт")
	}
	if !p.Quantity.IsPositive() {
		return errors.New("количество продукта должно быть больше нуля")
	}
	if p.UnitPrice.IsNegative() {
		return errors.New("цена не может быть отрицательной")
	}
	return nil
}

type ProductLines struct {
	ProductLines []ProductLineData `json:"product_lines"`
}

func (p ProductLines) Validate() error {
	for _, item := range p.ProductLines {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func ProductLineConvert(rec dbmodels.OpportunityProductLine) ProductLineData {
	return ProductLineData{
		ProductID:   rec.ProductID,
		Description: rec.Description,
		Quantity:    rec.Quantity,
		UnitPrice:   rec.UnitPrice,
	}
}

type CompetitorData struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Weakness string `json:"weakness"`
	IsWin    bool   `json:"is_win"` // конкурент выиграл сделку
}

type Competitors struct {
	Competitors []CompetitorData `json:"competitors"`
}

func (c Competitors) Validate() error {
	winners := 0
	for _, item := range c.Competitors {
		if item.Name == "" {
			return errors.New("не указано название конкурента")
		}
		if item.IsWin {
			winners++
		}
	}
	if winners > 1 {
		return errors.New("выигравшим может быть только один конкурент")
	}
	return nil
}

func CompetitorConvert(rec dbmodels.OpportunityCompetitor) CompetitorData {
	return CompetitorData{
		Name:     rec.Name,
		Strength: rec.Strength,
		Weakness: rec.Weakness,
		IsWin:    rec.IsWin,
	}
}

type OpportunityFilter struct {
	apimodels.Pagination
	CompanyID string `json:"company_id"` // фильтр по компании
	StageID   string `json:"stage_id"`   // фильтр по текущему этапу
	Search    string `json:"search"`     // поиск по названию/номеру
	IsClosed  *bool  `json:"is_closed"`  // закрытые/открытые
}
