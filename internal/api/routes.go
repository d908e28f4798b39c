package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.AuthRequired)

	profile := api.Group("/profile")
	profile.Get("", handler.GetProfile)
	profile.Post("/period/start", handler.StartPeriod)
	profile.Post("/period/end", handler.EndPeriod)
	profile.Post("/cycles", handler.AppendCycle)
	profile.Post("/cycles/:index/symptoms", handler.AppendSymptom)
	profile.Put("/insights", handler.UpdateInsights)
	profile.Get("/predictions", handler.GetPredictions)
	profile.Post("/calendar/sync", handler.SyncCalendar)
}
