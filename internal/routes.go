package internal

import (
	"net/http"

	"cjd/internal/controllers"
	"cjd/internal/providers"
	"cjd/internal/structures"
)

func InitRoutes(
	entryController *controllers.EntryController,
	profileController *controllers.ProfileController,
	badgeController *controllers.BadgeController,
	backupController *controllers.BackupController,
	mediaController *controllers.MediaController,
	lockController *controllers.LockController,
	conf *structures.Config,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/entries", http.HandlerFunc(entryController.List))
	routers.Post("/entries/save", http.HandlerFunc(entryController.Save))
	routers.Get("/entry", http.HandlerFunc(entryController.Get))
	routers.Post("/entries/update", http.HandlerFunc(entryController.Update))
	routers.Post("/entries/delete", http.HandlerFunc(entryController.Delete))
	// month is 1-12
	routers.Get("/entries/month", http.HandlerFunc(entryController.ByMonth))
	routers.Get("/entries/search", http.HandlerFunc(entryController.Search))
	routers.Post("/entries/repair", http.HandlerFunc(entryController.Repair))

	routers.Get("/profile", http.HandlerFunc(profileController.Get))
	routers.Post("/profile/save", http.HandlerFunc(profileController.Save))
	routers.Get("/settings", http.HandlerFunc(profileController.SettingsGet))
	routers.Post("/settings/save", http.HandlerFunc(profileController.SettingsSave))

	routers.Get("/badges", http.HandlerFunc(badgeController.List))
	routers.Post("/badges/viewed", http.HandlerFunc(badgeController.MarkViewed))

	routers.Get("/export", http.HandlerFunc(backupController.Export))
	routers.Post("/import", http.HandlerFunc(backupController.Import))

	routers.Post("/media/image", http.HandlerFunc(mediaController.UploadImage))
	routers.Post("/media/audio", http.HandlerFunc(mediaController.UploadAudio))
	routers.Get("/media/stats", http.HandlerFunc(mediaController.Stats))
	routers.Post("/media/sweep", http.HandlerFunc(mediaController.Sweep))

	routers.Get("/lock", http.HandlerFunc(lockController.Status))
	routers.Post("/lock/check", http.HandlerFunc(lockController.Check))

	return routers
}
