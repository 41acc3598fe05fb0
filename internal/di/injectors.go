//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"cjd/internal"
	"cjd/internal/controllers"
	"cjd/internal/journal"
	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
	"cjd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		models.NewStore,
		journal.NewZstdCompressor,
		journal.NewFileManager,
		journal.NewScheduler,

		services.NewMediaService,
		services.NewEntryService,
		services.NewProfileService,
		services.NewBadgeService,
		services.NewBackupService,
		services.NewLockService,

		controllers.NewEntryController,
		controllers.NewProfileController,
		controllers.NewBadgeController,
		controllers.NewBackupController,
		controllers.NewMediaController,
		controllers.NewLockController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
