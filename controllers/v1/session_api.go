package apiv1

import (
	"col-dashboard-backend/controllers"
	"col-dashboard-backend/lib/compare"
	"col-dashboard-backend/lib/session"
	apimodels "col-dashboard-backend/models/api"
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type sessionApiController struct {
	controllers.BaseAPIController
}

func InitSessionApiRouters(app *fiber.App) {
	controller := sessionApiController{}
	app.Route("session", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Post(":id/plot", controller.plot)
	})
}

// @Summary Создание сессии
// @Tags Сессии
// @Description Новая сессия с пустой выборкой
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.SessionView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session [post]
func (c *sessionApiController) create(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(session.Instance.Create()))
}

// @Summary Состояние сессии
// @Tags Сессии
// @Description Текущая выборка сессии
// @Param   id	path	string	true	"session ID"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/{id} [get]
func (c *sessionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := session.Instance.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сессии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Обновление выборки сессии
// @Tags Сессии
// @Description Сохраняет выбранные страны и референсный город
// @Param   id	path	string	true	"session ID"
// @Param	body body	 dashboardapimodels.SelectionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/{id} [put]
func (c *sessionApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dashboardapimodels.SelectionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := session.Instance.Update(id, payload)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления сессии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Данные графика по сессии
// @Tags Сессии
// @Description Пересчёт графика по сохранённой выборке сессии
// @Param   id	path	string	true	"session ID"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.PlotView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/{id}/plot [post]
func (c *sessionApiController) plot(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	state, err := session.Instance.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сессии")
	}
	view, err := compare.Instance.Plot(state.Selection)
	if err != nil {
		if errors.Is(err, compare.ErrReferenceNotFound) || errors.Is(err, compare.ErrZeroReference) || errors.Is(err, compare.ErrNoReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчёта данных графика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
