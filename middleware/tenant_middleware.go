package middleware

import (
	authutils "sales-pipeline-backend/lib/utils/auth-utils"
	"sales-pipeline-backend/models"
	apimodels "sales-pipeline-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetTenantID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(ctx, authutils.ClaimTenant)
}

func GetCompanyID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(ctx, authutils.ClaimCompany)
}

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(ctx, authutils.ClaimUser)
}

func GetRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.GetStringClaim(ctx, authutils.ClaimRole))
}

// TenantRequired - запросы без тенанта в токене не обрабатываем
func TenantRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetTenantID(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("не определен тенант пользователя"))
		}
		return ctx.Next()
	}
}
