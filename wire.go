//go:build wireinject
// +build wireinject

package main

import (
	"Depot/cmd"
	"Depot/database"
	"Depot/internal/config"
	"Depot/internal/handlers"
	"Depot/internal/repository"
	"Depot/internal/services"
	"Depot/internal/storage"
	"github.com/google/wire"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration("depot.yaml")
}

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		services.NewItemService,
		handlers.NewItemHandler,
		repository.NewItemRepository,
		database.SetupDatabase,
		storage.NewBlobStore,
		services.NewFileService,
		handlers.NewFileHandler,
		services.NewLogService,
		services.NewJanitorService,
		Provider,
	)
	return nil, nil
}
