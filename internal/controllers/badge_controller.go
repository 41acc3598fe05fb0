package controllers

import (
	"net/http"

	"cjd/internal/providers"
	"cjd/internal/services"
)

type BadgeController struct {
	logger providers.Logger
	badges services.BadgeServiceInterface
	cache  providers.CacheProviderInterface
}

func NewBadgeController(logger providers.Logger, badges services.BadgeServiceInterface, cache providers.CacheProviderInterface) *BadgeController {
	return &BadgeController{logger: logger, badges: badges, cache: cache}
}

func (bc *BadgeController) List(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, bc.cache, "badges", func() (any, error) {
		return bc.badges.AllBadgesWithStatus(), nil
	})
}

func (bc *BadgeController) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if !bc.badges.MarkBadgeAsViewed(id) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
