package models

type ComparisonOperator string

const (
	OperatorEqual    ComparisonOperator = "="
	OperatorNotEqual ComparisonOperator = "≠"
)

func (o ComparisonOperator) IsValid() bool {
	return o == OperatorEqual || o == OperatorNotEqual
}

type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

func (o LogicalOperator) IsValid() bool {
	return o == LogicalAnd || o == LogicalOr
}

// ConditionPropertyTitle - название условия из фиксированного словаря
type ConditionPropertyTitle string

const (
	CondCustomer          ConditionPropertyTitle = "Customer"
	CondProductCategory   ConditionPropertyTitle = "Product Category"
	CondBudget            ConditionPropertyTitle = "Budget"
	CondOpenDate          ConditionPropertyTitle = "Open Date"
	CondCloseDate         ConditionPropertyTitle = "Close Date"
	CondDecisionMaker     ConditionPropertyTitle = "Decision maker"
	CondLostByOtherReason ConditionPropertyTitle = "LostByOtherReason"
	CondProductLineDetail ConditionPropertyTitle = "Product.Line.Detail"
	CondCompetitorWin     ConditionPropertyTitle = "Competitor.Win"
	CondQuotationConfirm  ConditionPropertyTitle = "Quotation.confirm"
	CondSaleOrderStatus   ConditionPropertyTitle = "SaleOrder.status"
	CondSaleOrderDelivery ConditionPropertyTitle = "SaleOrder.Delivery.Status"
	CondCloseDeal         ConditionPropertyTitle = "Close Deal"
)

const (
	CompareDataEmpty = "0"
	CompareDataTrue  = "true"
)

// ConditionPropertyPreset - предзаполняемый справочник условий, идентификаторы стабильны
type ConditionPropertyPreset struct {
	ID          string
	Title       ConditionPropertyTitle
	CompareData string
}

var ConditionPropertyPresets = []ConditionPropertyPreset{
	{ID: "496aca60-bf3d-4879-a4cb-6eb1ebaf4ce8", Title: CondCustomer, CompareData: CompareDataEmpty},
	{ID: "e4e0c770-ab8d-4b4c-8f1e-5e7c2c1b1f01", Title: CondProductCategory, CompareData: CompareDataEmpty},
	{ID: "36233e9a-8dc9-4a7c-a6ad-504bac91d4cb", Title: CondBudget, CompareData: CompareDataEmpty},
	{ID: "195440c2-41bc-43f1-b387-fc5cd26401df", Title: CondOpenDate, CompareData: CompareDataEmpty},
	{ID: "43009b1a-a25d-43be-ab97-47540a2f00cb", Title: CondCloseDate, CompareData: CompareDataEmpty},
	{ID: "35dc4bf8-8a3b-4bd6-9b1f-3e5c1f06d4a2", Title: CondDecisionMaker, CompareData: CompareDataEmpty},
	{ID: "c8fa79ae-2490-4286-af25-3407e129fedb", Title: CondLostByOtherReason, CompareData: CompareDataTrue},
	{ID: "6b9e3b2f-0c1d-4f57-9a11-7f3f4e9d2c10", Title: CondProductLineDetail, CompareData: CompareDataEmpty},
	{ID: "d5b4a6c1-93e2-4a8f-b7c6-2e1f0a9b8c31", Title: CondCompetitorWin, CompareData: CompareDataTrue},
	{ID: "acab2c1e-74f2-421b-8838-7aa55c217f72", Title: CondQuotationConfirm, CompareData: CompareDataTrue},
	{ID: "f0a1b2c3-d4e5-4f60-8172-93a4b5c6d7e8", Title: CondSaleOrderStatus, CompareData: CompareDataEmpty},
	{ID: "b7c2e9d4-1f3a-4c5b-8d6e-0a9f8e7d6c54", Title: CondSaleOrderDelivery, CompareData: CompareDataEmpty},
	{ID: "9e1c8b7a-6d5f-4e3c-a2b1-0f9e8d7c6b65", Title: CondCloseDeal, CompareData: CompareDataTrue},
}

type SaleOrderStatus string

const (
	SaleOrderDraft     SaleOrderStatus = "draft"
	SaleOrderCreated   SaleOrderStatus = "created"
	SaleOrderAdded     SaleOrderStatus = "added"
	SaleOrderFinished  SaleOrderStatus = "finished"
	SaleOrderCancelled SaleOrderStatus = "cancelled"
)

func (s SaleOrderStatus) IsValid() bool {
	switch s {
	case SaleOrderDraft, SaleOrderCreated, SaleOrderAdded, SaleOrderFinished, SaleOrderCancelled:
		return true
	}
	return false
}

// IsApproved - заказ утвержден (проведен или завершен)
func (s SaleOrderStatus) IsApproved() bool {
	return s == SaleOrderAdded || s == SaleOrderFinished
}

type DeliveryStatus string

const (
	DeliveryNone               DeliveryStatus = "none"
	DeliveryWaiting            DeliveryStatus = "waiting"
	DeliveryPartiallyDelivered DeliveryStatus = "partially_delivered"
	DeliveryDelivered          DeliveryStatus = "delivered"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryNone, DeliveryWaiting, DeliveryPartiallyDelivered, DeliveryDelivered:
		return true
	}
	return false
}

func (s DeliveryStatus) IsStarted() bool {
	return s == DeliveryPartiallyDelivered || s == DeliveryDelivered
}
