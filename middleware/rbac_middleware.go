package middleware

import (
	"sales-pipeline-backend/lib/rbac"

	"github.com/gofiber/fiber/v2"
)

const rbacForbidden = "RBAC_FORBIDDEN"

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		role := GetRole(ctx)
		if userID == "" || role == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": rbacForbidden,
			})
		}
		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(GetTenantID(ctx), userID, role, ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": rbacForbidden,
			})
		}
		return ctx.Next()
	}
}
