package routers

import (
	"Depot/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupItemRouter(app, server)
	SetupUploadRouter(app, server)
	SetupJanitorRouter(app, server)
}
