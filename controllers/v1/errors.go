package apiv1

import (
	"sales-pipeline-backend/controllers"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	apimodels "sales-pipeline-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// sendStageError переводит ошибки пересчета этапа в http статусы
func sendStageError(c *controllers.BaseAPIController, ctx *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, opportunitystagehandler.ErrOpportunityNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, opportunitystagehandler.ErrRecomputeBusy):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, message)
}

func hMsgResponse(ctx *fiber.Ctx, hMsg string, data interface{}) error {
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}
