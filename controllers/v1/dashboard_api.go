package apiv1

import (
	"fmt"
	"time"

	"col-dashboard-backend/config"
	"col-dashboard-backend/controllers"
	"col-dashboard-backend/lib/compare"
	pdfexport "col-dashboard-backend/lib/export/pdf"
	xlsexport "col-dashboard-backend/lib/export/xls"
	apimodels "col-dashboard-backend/models/api"
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("config", controller.dashboardConfig)
		router.Get("countries", controller.countries)
		router.Post("cities", controller.cities)
		router.Post("plot", controller.plot)
		router.Post("export/xlsx", controller.exportXlsx)
		router.Post("export/pdf", controller.exportPdf)
	})
}

// @Summary Тексты дашборда
// @Tags Дашборд
// @Description Заголовок и подсказки страницы, задаются конфигурацией
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardConfigView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/config [get]
func (c *dashboardApiController) dashboardConfig(ctx *fiber.Ctx) error {
	cfg := config.Conf.Dashboard
	view := dashboardapimodels.DashboardConfigView{
		Title:           cfg.Title,
		CountriesPrompt: cfg.CountriesPrompt,
		ReferencePrompt: cfg.ReferencePrompt,
		EmptyPrompt:     cfg.EmptyPrompt,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список стран
// @Tags Дашборд
// @Description Отсортированный список стран набора данных для мультиселекта
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/countries [get]
func (c *dashboardApiController) countries(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(compare.Instance.Countries()))
}

// @Summary Города выбранных стран
// @Tags Дашборд
// @Description Отсортированный список городов для выбора референсного города
// @Param	body body	 dashboardapimodels.CountriesData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/cities [post]
func (c *dashboardApiController) cities(ctx *fiber.Ctx) error {
	var payload dashboardapimodels.CountriesData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(compare.Instance.Cities(payload)))
}

// @Summary Данные графика
// @Tags Дашборд
// @Description Точки и границы осей для scatter-графика по текущей выборке
// @Param	body body	 dashboardapimodels.SelectionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.PlotView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/plot [post]
func (c *dashboardApiController) plot(ctx *fiber.Ctx) error {
	var payload dashboardapimodels.SelectionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	// пустая отфильтрованная выборка — не ошибка, Plot вернёт подсказку
	view, err := compare.Instance.Plot(payload)
	if err != nil {
		if errors.Is(err, compare.ErrReferenceNotFound) || errors.Is(err, compare.ErrZeroReference) || errors.Is(err, compare.ErrNoReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчёта данных графика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Выгрузить сравнение в Excel
// @Tags Дашборд
// @Description Таблица отклонений от референсного города в xlsx
// @Param	body body	 dashboardapimodels.SelectionData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/export/xlsx [post]
func (c *dashboardApiController) exportXlsx(ctx *fiber.Ctx) error {
	payload, ok, err := c.exportPayload(ctx)
	if !ok {
		return err
	}
	list, err := compare.Instance.ComparisonTable(payload)
	if err != nil {
		if errors.Is(err, compare.ErrReferenceNotFound) || errors.Is(err, compare.ErrZeroReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчёта таблицы сравнения")
	}
	data, err := xlsexport.Instance.ExportComparison(list, payload.ReferenceCity)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки сравнения в Excel")
	}
	fileName := fmt.Sprintf("col-comparison-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Выгрузить сравнение в PDF
// @Tags Дашборд
// @Description Таблица отклонений от референсного города в pdf
// @Param	body body	 dashboardapimodels.SelectionData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/export/pdf [post]
func (c *dashboardApiController) exportPdf(ctx *fiber.Ctx) error {
	payload, ok, err := c.exportPayload(ctx)
	if !ok {
		return err
	}
	list, err := compare.Instance.ComparisonTable(payload)
	if err != nil {
		if errors.Is(err, compare.ErrReferenceNotFound) || errors.Is(err, compare.ErrZeroReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчёта таблицы сравнения")
	}
	data, err := pdfexport.GenerateComparison(config.Conf.Dashboard.Title, payload.ReferenceCity, list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки сравнения в PDF")
	}
	fileName := fmt.Sprintf("col-comparison-%v.pdf", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}

// exportPayload разбирает и проверяет выборку для выгрузок.
// Пустая выборка для выгрузки — ошибка, в отличие от графика.
func (c *dashboardApiController) exportPayload(ctx *fiber.Ctx) (payload dashboardapimodels.SelectionData, ok bool, err error) {
	if err := c.BodyParser(ctx, &payload); err != nil {
		return payload, false, ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.IsEmpty() {
		return payload, false, ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(config.Conf.Dashboard.EmptyPrompt))
	}
	if err := payload.Validate(); err != nil {
		return payload, false, ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return payload, true, nil
}
