package dict

import (
	"sales-pipeline-backend/controllers"
	conditionpropertyprovider "sales-pipeline-backend/lib/dicts/condition-property"
	apimodels "sales-pipeline-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type conditionPropertyDictApiController struct {
	controllers.BaseAPIController
}

func InitConditionPropertyDictApiRouters(app *fiber.App) {
	controller := conditionPropertyDictApiController{}
	app.Route("condition_property", func(router fiber.Router) {
		router.Get("list", controller.list)
	})
}

// @Summary Список условий этапов
// @Tags Справочник. Условия этапов
// @Description Список условий этапов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.ConditionPropertyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/condition_property/list [get]
func (c *conditionPropertyDictApiController) list(ctx *fiber.Ctx) error {
	list, err := conditionpropertyprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения справочника условий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
