package rbac

import (
	"sales-pipeline-backend/models"
)

var (
	AdminRoleSet        = []models.UserRole{models.SalesAdminRole}
	AdminManagerRoleSet = []models.UserRole{models.SalesAdminRole, models.SalesManagerRole}
	AllRoles            = []models.UserRole{models.SalesAdminRole, models.SalesManagerRole, models.SalesPersonRole}
)

func (i *impl) initRules() {
	i.opportunity()
	i.stageConfig()
	i.quotation()
	i.saleOrder()
	i.report()
}

func (i *impl) opportunity() {
	// VIEW
	i.mustRegister(models.OpportunityModule, models.ViewPermission, AllRoles, "/api/v1/space/opportunity/list [post]")
	i.mustRegister(models.OpportunityModule, models.ViewPermission, AllRoles, "/api/v1/space/opportunity/{id} [get]")
	i.mustRegister(models.OpportunityModule, models.ViewPermission, AllRoles, "/api/v1/space/opportunity/{id}/stages [get]")
	// CREATE/EDIT
	i.mustRegister(models.OpportunityModule, models.CreatePermission, AllRoles, "/api/v1/space/opportunity [post]")
	i.mustRegister(models.OpportunityModule, models.EditPermission, AllRoles, "/api/v1/space/opportunity/{id} [put]")
	i.mustRegister(models.OpportunityModule, models.EditPermission, AllRoles, "/api/v1/space/opportunity/{id}/product_lines [put]")
	i.mustRegister(models.OpportunityModule, models.EditPermission, AllRoles, "/api/v1/space/opportunity/{id}/competitors [put]")
	i.mustRegister(models.OpportunityModule, models.EditPermission, AllRoles, "/api/v1/space/opportunity/{id}/stages/recompute [put]")
	// FLOW
	i.mustRegister(models.OpportunityModule, models.FlowPermission, AdminManagerRoleSet, "/api/v1/space/opportunity/{id}/close [put]")
}

func (i *impl) stageConfig() {
	i.mustRegister(models.StageConfigModule, models.ViewPermission, AllRoles, "/api/v1/space/stage_config/list [post]")
	i.mustRegister(models.StageConfigModule, models.StagesPermission, AdminRoleSet, "/api/v1/space/stage_config [post]")
	i.mustRegister(models.StageConfigModule, models.StagesPermission, AdminRoleSet, "/api/v1/space/stage_config/init_default [put]")
	i.mustRegister(models.StageConfigModule, models.StagesPermission, AdminRoleSet, "/api/v1/space/stage_config/{id} [put]")
	i.mustRegister(models.StageConfigModule, models.StagesPermission, AdminRoleSet, "/api/v1/space/stage_config/{id} [delete]")
}

func (i *impl) quotation() {
	i.mustRegister(models.QuotationModule, models.ViewPermission, AllRoles, "/api/v1/space/quotation/{id} [get]")
	i.mustRegister(models.QuotationModule, models.CreatePermission, AllRoles, "/api/v1/space/quotation [post]")
	i.mustRegister(models.QuotationModule, models.FlowPermission, AdminManagerRoleSet, "/api/v1/space/quotation/{id}/confirm [put]")
}

func (i *impl) saleOrder() {
	i.mustRegister(models.SaleOrderModule, models.ViewPermission, AllRoles, "/api/v1/space/sale_order/{id} [get]")
	i.mustRegister(models.SaleOrderModule, models.CreatePermission, AllRoles, "/api/v1/space/sale_order [post]")
	i.mustRegister(models.SaleOrderModule, models.FlowPermission, AdminManagerRoleSet, "/api/v1/space/sale_order/{id}/status [put]")
	i.mustRegister(models.SaleOrderModule, models.FlowPermission, AdminManagerRoleSet, "/api/v1/space/sale_order/{id}/delivery_status [put]")
}

func (i *impl) report() {
	i.mustRegister(models.ReportModule, models.ViewPermission, AdminManagerRoleSet, "/api/v1/space/report/pipeline [post]")
	i.mustRegister(models.ReportModule, models.ExportPermission, AdminManagerRoleSet, "/api/v1/space/report/pipeline/export [post]")
	i.mustRegister(models.ReportModule, models.ExportPermission, AdminManagerRoleSet, "/api/v1/space/report/pipeline/archive [post]")
}
