package routers

import (
	"Depot/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupUploadRouter(app *fiber.App, server *cmd.Server) {
	fileHandler := server.FileHandler
	app.Post("/upload", fileHandler.UploadFiles)
	app.Get("/download/:id", fileHandler.DownloadFile)
}
