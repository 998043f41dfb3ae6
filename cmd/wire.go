package cmd

import (
	"Depot/internal/config"
	"Depot/internal/handlers"
	"Depot/internal/services"
	"gorm.io/gorm"
)

type Server struct {
	Configuration  *config.Configuration
	DB             *gorm.DB
	ItemService    services.ItemService
	ItemHandler    *handlers.ItemHandler
	FileService    services.FileService
	FileHandler    *handlers.FileHandler
	LogService     services.LogService
	JanitorService *services.Janitor
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	itemService services.ItemService,
	itemHandler *handlers.ItemHandler,
	fileService services.FileService,
	fileHandler *handlers.FileHandler,
	logService services.LogService,
	janitorService *services.Janitor,
) *Server {
	return &Server{
		Configuration:  configuration,
		DB:             db,
		ItemService:    itemService,
		ItemHandler:    itemHandler,
		FileService:    fileService,
		FileHandler:    fileHandler,
		LogService:     logService,
		JanitorService: janitorService,
	}
}
