package opportunityapimodels

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type QuotationData struct {
	CompanyID   string          `json:"company_id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (q QuotationData) Validate() error {
	if q.CompanyID == "" {
		return errors.New("не указана компания")
	}
	if q.Title == "" {
		return errors.New("не указано название коммерческого предложения")
	}
	if q.TotalAmount.IsNegative() {
		return errors.New("сумма не может быть отрицательной")
	}
	return nil
}

type QuotationView struct {
	QuotationData
	ID          string `json:"id"`
	IsConfirmed bool   `json:"is_confirmed"`
}

func QuotationConvert(rec dbmodels.Quotation) QuotationView {
	return QuotationView{
		QuotationData: QuotationData{
			CompanyID:   rec.CompanyID,
			Code:        rec.Code,
			Title:       rec.Title,
			TotalAmount: rec.TotalAmount,
		},
		ID:          rec.ID,
		IsConfirmed: rec.IsConfirmed,
	}
}

type SaleOrderData struct {
	CompanyID   string          `json:"company_id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (s SaleOrderData) Validate() error {
	if s.CompanyID == "" {
		return errors.New("не указана компания")
	}
	if s.Title == "" {
		return errors.New("не указано название заказа")
	}
	if s.TotalAmount.IsNegative() {
		return errors.New("сумма не может быть отрицательной")
	}
	return nil
}

type SaleOrderView struct {
	SaleOrderData
	ID             string                 `json:"id"`
	SystemStatus   models.SaleOrderStatus `json:"system_status"`
	DeliveryStatus models.DeliveryStatus  `json:"delivery_status"`
}

func SaleOrderConvert(rec dbmodels.SaleOrder) SaleOrderView {
	return SaleOrderView{
		SaleOrderData: SaleOrderData{
			CompanyID:   rec.CompanyID,
			Code:        rec.Code,
			Title:       rec.Title,
			TotalAmount: rec.TotalAmount,
		},
		ID:             rec.ID,
		SystemStatus:   rec.SystemStatus,
		DeliveryStatus: rec.DeliveryStatus,
	}
}

type SaleOrderStatusRequest struct {
	Status models.SaleOrderStatus `json:"status"`
}

func (s SaleOrderStatusRequest) Validate() error {
	if !s.Status.IsValid() {
		return errors.Errorf("недопустимый статус заказа: %v", s.Status)
	}
	return nil
}

type DeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status"`
}

func (d DeliveryStatusRequest) Validate() error {
	if !d.Status.IsValid() {
		return errors.Errorf("недопустимый статус поставки: %v", d.Status)
	}
	return nil
}
