package apiv1

import (
	"sales-pipeline-backend/controllers"
	quotationhandler "sales-pipeline-backend/lib/quotation"
	saleorderhandler "sales-pipeline-backend/lib/sale-order"
	"sales-pipeline-backend/middleware"
	apimodels "sales-pipeline-backend/models/api"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"

	"github.com/gofiber/fiber/v2"
)

type documentApiController struct {
	controllers.BaseAPIController
}

func InitDocumentApiRouters(app *fiber.App) {
	controller := documentApiController{}
	app.Route("quotation", func(router fiber.Router) {
		router.Post("", controller.quotationCreate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.quotationGet)
			idRoute.Put("confirm", controller.quotationConfirm)
		})
	})
	app.Route("sale_order", func(router fiber.Router) {
		router.Post("", controller.saleOrderCreate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.saleOrderGet)
			idRoute.Put("status", controller.saleOrderStatus)
			idRoute.Put("delivery_status", controller.saleOrderDeliveryStatus)
		})
	})
}

// @Summary Создание КП
// @Tags Коммерческое предложение
// @Description Создание коммерческого предложения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.QuotationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/quotation [post]
func (c *documentApiController) quotationCreate(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.QuotationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := quotationhandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания коммерческого предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение КП
// @Tags Коммерческое предложение
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=opportunityapimodels.QuotationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/quotation/{id} [get]
func (c *documentApiController) quotationGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := quotationhandler.Instance.GetByID(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения коммерческого предложения")
	}
	return hMsgResponse(ctx, hMsg, resp)
}

// @Summary Подтверждение КП
// @Tags Коммерческое предложение
// @Description Подтверждение, этапы связанных сделок пересчитываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/quotation/{id}/confirm [put]
func (c *documentApiController) quotationConfirm(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := quotationhandler.Instance.Confirm(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подтверждения коммерческого предложения")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Создание заказа
// @Tags Заказ
// @Description Создание заказа в статусе черновик
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.SaleOrderData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/sale_order [post]
func (c *documentApiController) saleOrderCreate(ctx *fiber.Ctx) error {
	var payload opportunityapimodels.SaleOrderData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.CompanyID == "" {
		payload.CompanyID = middleware.GetCompanyID(ctx)
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := saleorderhandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заказа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение заказа
// @Tags Заказ
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=opportunityapimodels.SaleOrderView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/sale_order/{id} [get]
func (c *documentApiController) saleOrderGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := saleorderhandler.Instance.GetByID(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заказа")
	}
	return hMsgResponse(ctx, hMsg, resp)
}

// @Summary Статус заказа
// @Tags Заказ
// @Description Смена статуса, этапы связанных сделок пересчитываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.SaleOrderStatusRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/sale_order/{id}/status [put]
func (c *documentApiController) saleOrderStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.SaleOrderStatusRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := saleorderhandler.Instance.SetStatus(middleware.GetTenantID(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса заказа")
	}
	return hMsgResponse(ctx, hMsg, nil)
}

// @Summary Статус поставки
// @Tags Заказ
// @Description Смена статуса поставки, этапы связанных сделок пересчитываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 opportunityapimodels.DeliveryStatusRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/sale_order/{id}/delivery_status [put]
func (c *documentApiController) saleOrderDeliveryStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload opportunityapimodels.DeliveryStatusRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := saleorderhandler.Instance.SetDeliveryStatus(middleware.GetTenantID(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса поставки")
	}
	return hMsgResponse(ctx, hMsg, nil)
}
