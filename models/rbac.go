package models

type RbacFunc func(tenantID, userID string, role UserRole, path string) bool

type Module string

const (
	OpportunityModule Module = "OPPORTUNITY"
	StageConfigModule Module = "STAGE_CONFIG"
	QuotationModule   Module = "QUOTATION"
	SaleOrderModule   Module = "SALE_ORDER"
	ReportModule      Module = "REPORT"
	DictModule        Module = "DICT"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	StagesPermission Permission = "STAGES"
	ExportPermission Permission = "EXPORT"
)
