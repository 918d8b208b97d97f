package apiv1

import (
	"fmt"
	"sales-pipeline-backend/controllers"
	reporthandler "sales-pipeline-backend/lib/report"
	"sales-pipeline-backend/middleware"
	apimodels "sales-pipeline-backend/models/api"
	reportapimodels "sales-pipeline-backend/models/api/report"

	"github.com/gofiber/fiber/v2"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Route("pipeline", func(pipelineRoute fiber.Router) {
			pipelineRoute.Post("", controller.pipeline)
			pipelineRoute.Post("export", controller.export)
			pipelineRoute.Post("archive", controller.archive)
		})
	})
}

func (c *reportApiController) parseFilter(ctx *fiber.Ctx) (filter reportapimodels.PipelineFilter, err error) {
	if err = c.BodyParser(ctx, &filter); err != nil {
		return filter, err
	}
	if filter.CompanyID == "" {
		filter.CompanyID = middleware.GetCompanyID(ctx)
	}
	return filter, filter.Validate()
}

func (c *reportApiController) parseFormat(ctx *fiber.Ctx) (reportapimodels.ExportFormat, error) {
	format := reportapimodels.ExportFormat(ctx.Query("format", string(reportapimodels.ExportXlsx)))
	return format, format.Validate()
}

// @Summary Сводка по воронке
// @Tags Отчеты
// @Description Кол-во сделок, бюджет и бюджет с учетом вероятности по текущим этапам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.PipelineFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.PipelineSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/pipeline [post]
func (c *reportApiController) pipeline(ctx *fiber.Ctx) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := reporthandler.Instance.Pipeline(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования сводки по воронке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка воронки
// @Tags Отчеты
// @Description Выгрузка сводки по воронке в xlsx или pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.PipelineFilter	true	"request body"
// @Param   format          		query    string  				    	false         "xlsx|pdf"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/pipeline/export [post]
func (c *reportApiController) export(ctx *fiber.Ctx) error {
	format, err := c.parseFormat(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, contentType, fileName, err := reporthandler.Instance.Export(middleware.GetTenantID(ctx), filter, format)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки воронки")
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Сохранение выгрузки в хранилище
// @Tags Отчеты
// @Description Выгрузка сохраняется в S3, в ответе временная ссылка на скачивание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.PipelineFilter	true	"request body"
// @Param   format          		query    string  				    	false         "xlsx|pdf"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ArchiveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/pipeline/archive [post]
func (c *reportApiController) archive(ctx *fiber.Ctx) error {
	format, err := c.parseFormat(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := reporthandler.Instance.Archive(ctx.UserContext(), middleware.GetTenantID(ctx), filter, format)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения выгрузки воронки")
	}
	return hMsgResponse(ctx, hMsg, resp)
}
