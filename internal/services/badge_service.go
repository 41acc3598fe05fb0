package services

import (
	"time"

	"cjd/internal/models"
	"cjd/internal/providers"
)

// BadgeWithStatus annotates a static definition with its earned state
// for display. Every definition appears, earned or not.
type BadgeWithStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
	EarnedDate  string `json:"earnedDate,omitempty"`
	Viewed      bool   `json:"viewed,omitempty"`
}

type BadgeServiceInterface interface {
	RecordEntryCreated(e *models.JournalEntry)
	RecordSearch()
	RecordExport()
	AllBadgesWithStatus() map[string][]BadgeWithStatus
	MarkBadgeAsViewed(id string) bool
}

// BadgeService accumulates usage counters and awards badges from the
// static definition registry. Awards are idempotent: one badge instance
// per definition id, ever.
type BadgeService struct {
	store       *models.Store
	definitions []BadgeDefinition
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewBadgeService(store *models.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) BadgeServiceInterface {
	return &BadgeService{
		store:       store,
		definitions: BadgeDefinitions(),
		logger:      logger,
		metrics:     metrics,
	}
}

// RecordEntryCreated folds a new entry into the progress counters and
// runs an award sweep.
//
// The streak rule is exact calendar-day adjacency on the entry's date:
// same day as the last entry leaves the streak unchanged, the very next
// day extends it by one, anything else resets it to one.
func (bs *BadgeService) RecordEntryCreated(e *models.JournalEntry) {
	progress := bs.store.Progress()
	progress.EntriesCount++

	entryDay, ok := models.ParseInstant(e.Date)
	if !ok {
		entryDay = time.Now()
	}

	if last, ok := models.ParseInstant(progress.LastEntryDate); ok {
		switch models.DaysBetween(last, entryDay) {
		case 0:
			// Same calendar day: streak unchanged.
		case 1:
			progress.StreakDays++
		default:
			progress.StreakDays = 1
		}
	} else {
		progress.StreakDays = 1
	}
	progress.LastEntryDate = models.FormatInstant(entryDay)

	for _, tag := range e.Tags {
		progress.TagsUsed[tag]++
	}
	if progress.FirstEntryDate == "" {
		progress.FirstEntryDate = models.FormatInstant(entryDay)
	}

	bs.store.PutProgress(progress)
	bs.awardSweep(progress)
}

func (bs *BadgeService) RecordSearch() {
	progress := bs.store.Progress()
	progress.SearchCount++
	bs.store.PutProgress(progress)
	bs.awardSweep(progress)
}

func (bs *BadgeService) RecordExport() {
	progress := bs.store.Progress()
	progress.ExportCount++
	bs.store.PutProgress(progress)
	bs.awardSweep(progress)
}

// awardSweep evaluates every not-yet-earned definition against the
// current progress and service profile.
func (bs *BadgeService) awardSweep(progress *models.BadgeProgress) {
	profile, _ := bs.store.ServiceInfo()

	for _, def := range bs.definitions {
		if bs.store.HasBadge(def.ID) {
			continue
		}
		if !def.Condition(progress, profile) {
			continue
		}
		awarded := bs.store.AddBadge(&models.Badge{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Icon:        def.Icon,
			AwardedAt:   models.FormatInstant(time.Now()),
		})
		if awarded {
			bs.logger.Infof(providers.TypeBadge, "Awarded badge %s", def.ID)
			bs.metrics.IncBadgeAwards(def.Category)
		}
	}
}

// AllBadgesWithStatus returns every static definition annotated with
// earned state, grouped by category. Display-only.
func (bs *BadgeService) AllBadgesWithStatus() map[string][]BadgeWithStatus {
	earned := make(map[string]*models.Badge)
	for _, b := range bs.store.Badges() {
		earned[b.ID] = b
	}

	out := make(map[string][]BadgeWithStatus)
	for _, def := range bs.definitions {
		status := BadgeWithStatus{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Icon:        def.Icon,
		}
		if b, ok := earned[def.ID]; ok {
			status.Earned = true
			status.EarnedDate = b.AwardedAt
			status.Viewed = b.Viewed
		}
		out[def.Category] = append(out[def.Category], status)
	}
	return out
}

func (bs *BadgeService) MarkBadgeAsViewed(id string) bool {
	return bs.store.MarkBadgeViewed(id)
}
