package apiv1

import (
	"sales-pipeline-backend/controllers"
	stageconfighandler "sales-pipeline-backend/lib/stage-config"
	"sales-pipeline-backend/middleware"
	apimodels "sales-pipeline-backend/models/api"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"

	"github.com/gofiber/fiber/v2"
)

type stageConfigApiController struct {
	controllers.BaseAPIController
}

func InitStageConfigApiRouters(app *fiber.App) {
	controller := stageConfigApiController{}
	app.Route("stage_config", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Put("init_default", controller.initDefault)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Список этапов
// @Tags Настройка этапов
// @Description Этапы компании в порядке разрешения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.StageConfigFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]opportunityapimodels.StageConfigView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage_config/list [post]
func (c *stageConfigApiController) list(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.StageConfigFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := stageconfighandler.Instance.List(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка этапов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание этапа
// @Tags Настройка этапов
// @Description Создание этапа, сделки компании помечаются к пересчету
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.StageConfigData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage_config [post]
func (c *stageConfigApiController) create(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.StageConfigData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := stageconfighandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания этапа")
	}
	return hMsgResponse(ctx, hMsg, id)
}

// @Summary Изменение этапа
// @Tags Настройка этапов
// @Description Изменение этапа, сделки компании помечаются к пересчету
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.StageConfigData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage_config/{id} [put]
func (c *stageConfigApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.StageConfigData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := stageconfighandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения этапа")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Удаление этапа
// @Tags Настройка этапов
// @Description Удаление этапа, недоступно если этап уже пройден сделками
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage_config/{id} [delete]
func (c *stageConfigApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := stageconfighandler.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления этапа")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Этапы по умолчанию
// @Tags Настройка этапов
// @Description Заполнение этапов компании набором по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.CompanyRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage_config/init_default [put]
func (c *stageConfigApiController) initDefault(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.CompanyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := stageconfighandler.Instance.InitDefault(middleware.GetTenantID(ctx), payload.CompanyID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка заполнения этапов по умолчанию")
	}
	return hMsgResponse(ctx, hMsg, nil)
}
