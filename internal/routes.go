package internal

import (
	"comicbot/internal/controllers"
	"comicbot/internal/providers"
	"net/http"
)

func InitRoutes(healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/", http.HandlerFunc(healthController.Alive))
	routers.Get("/health", http.HandlerFunc(healthController.Health))
	return routers
}
