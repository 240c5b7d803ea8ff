package internal

import (
	"net/http"

	"agendad/internal/controllers"
	"agendad/internal/providers"
	"agendad/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/day", http.HandlerFunc(apiController.GetDay))
	routers.Get("/week", http.HandlerFunc(apiController.GetWeek))
	routers.Post("/refresh", http.HandlerFunc(apiController.Refresh))
	routers.Post("/homework", http.HandlerFunc(apiController.AddHomework))
	routers.Post("/homework/delete", http.HandlerFunc(apiController.DeleteHomework))
	routers.Post("/rename", http.HandlerFunc(apiController.SetRename))
	routers.Post("/overlay", http.HandlerFunc(apiController.SetOverlay))
	routers.Post("/preference", http.HandlerFunc(apiController.SetPreference))
	return routers
}
