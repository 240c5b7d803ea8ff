//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"agendad/internal"
	"agendad/internal/controllers"
	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/schedule"
	"agendad/internal/services"
	"agendad/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		models.NewRenameStore,
		models.NewOverlayStore,
		models.NewHomeworkStore,
		models.NewPrefStore,

		schedule.NewLocation,
		schedule.NewFeedSource,
		schedule.NewIngestor,
		schedule.NewInjector,
		schedule.NewSelector,
		schedule.NewAnnotator,
		schedule.NewZstdCompressor,
		schedule.NewFileManager,
		schedule.NewLogNotifier,
		schedule.NewScheduler,

		services.NewAgendaService,
		provideAgendaProvider,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
