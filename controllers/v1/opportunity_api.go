package apiv1

import (
	"sales-pipeline-backend/controllers"
	opportunityhandler "sales-pipeline-backend/lib/opportunity"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	"sales-pipeline-backend/middleware"
	apimodels "sales-pipeline-backend/models/api"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"

	"github.com/gofiber/fiber/v2"
)

type opportunityApiController struct {
	controllers.BaseAPIController
}

func InitOpportunityApiRouters(app *fiber.App) {
	controller := opportunityApiController{}
	app.Route("opportunity", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Put("close", controller.close)
			idRoute.Put("product_lines", controller.setProductLines)
			idRoute.Put("competitors", controller.setCompetitors)
			idRoute.Route("stages", func(stageRoute fiber.Router) {
				stageRoute.Get("", controller.stageList)
				stageRoute.Put("recompute", controller.recompute)
			})
		})
	})
}

// @Summary Создание
// @Tags Сделка
// @Description Создание сделки, этап рассчитывается при сохранении
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.OpportunityData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity [post]
func (c *opportunityApiController) create(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.OpportunityData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := opportunityhandler.Instance.Create(middleware.GetTenantID(ctx), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сделки")
	}
	return hMsgResponse(ctx, hMsg, id)
}

// @Summary Обновление
// @Tags Сделка
// @Description Обновление сделки, этап пересчитывается в той же транзакции
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.OpportunityData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id} [put]
func (c *opportunityApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.OpportunityData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := opportunityhandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения сделки")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Получение по ИД
// @Tags Сделка
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=opportunityapimodels.OpportunityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id} [get]
func (c *opportunityApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := opportunityhandler.Instance.GetByID(middleware.GetTenantID(ctx), id)
	if err != nil {
		return sendStageError(&c.BaseAPIController, ctx, err, "Ошибка получения сделки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Сделка
// @Description Список сделок с фильтром и постраничной выдачей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.OpportunityFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]opportunityapimodels.OpportunityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/list [post]
func (c *opportunityApiController) list(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.OpportunityFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := opportunityhandler.Instance.List(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сделок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Закрытие
// @Tags Сделка
// @Description Закрытие сделки, после закрытия сделка не редактируется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id}/close [put]
func (c *opportunityApiController) close(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := opportunityhandler.Instance.Close(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка закрытия сделки")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Продуктовые линейки
// @Tags Сделка
// @Description Замена списка продуктовых линеек сделки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.ProductLines	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id}/product_lines [put]
func (c *opportunityApiController) setProductLines(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.ProductLines
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := opportunityhandler.Instance.SetProductLines(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения продуктовых линеек")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Конкуренты
// @Tags Сделка
// @Description Замена списка конкурентов сделки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.Competitors	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id}/competitors [put]
func (c *opportunityApiController) setCompetitors(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.Competitors
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := opportunityhandler.Instance.SetCompetitors(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения конкурентов")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Пройденные этапы
// @Tags Сделка
// @Description Цепочка пройденных этапов сделки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]opportunityapimodels.OpportunityStageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id}/stages [get]
func (c *opportunityApiController) stageList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := opportunitystagehandler.Instance.StageList(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения этапов сделки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Пересчет этапа
// @Tags Сделка
// @Description Принудительный пересчет этапа и вероятности выигрыша
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=opportunityapimodels.StageResolutionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/opportunity/{id}/stages/recompute [put]
func (c *opportunityApiController) recompute(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := opportunitystagehandler.Instance.Recompute(ctx.UserContext(), middleware.GetTenantID(ctx), id)
	if err != nil {
		return sendStageError(&c.BaseAPIController, ctx, err, "Ошибка пересчета этапа сделки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
