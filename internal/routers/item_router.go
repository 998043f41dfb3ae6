package routers

import (
	"Depot/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupItemRouter(app *fiber.App, server *cmd.Server) {
	itemHandler := server.ItemHandler
	app.Get("/items/search", itemHandler.ItemsSearch)
	app.Get("/items", itemHandler.ListItems)
	app.Post("/folders", itemHandler.CreateFolder)
	app.Get("/items/:id", itemHandler.GetItemByID)
	app.Get("/items/:id/path", itemHandler.GetItemPath)
	app.Patch("/items/:id", itemHandler.MoveOrRenameItem)
	app.Delete("/items/:id", itemHandler.DeleteItem)
}
