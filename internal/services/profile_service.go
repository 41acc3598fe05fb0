package services

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"

	"cjd/internal/models"
	"cjd/internal/providers"
)

const (
	// Days of service in a standard NYSC year.
	serviceTotalDays = 365

	// Start-date edits inside this window after the date was first set
	// do not consume a change.
	startDateGraceDays = 30

	// How many start-date changes a profile gets after the grace window.
	defaultDateChanges = 3

	// Settings key that older app builds wrote service info under.
	legacyServiceInfoKey = "serviceInfo"
)

var ErrInvalidStartDate = errors.New("service start date is not a valid date")

type ProfileServiceInterface interface {
	Get() (*models.ServiceProfile, bool)
	Save(name, stateOfDeployment, startDate string) (*models.ServiceProfile, error)
	Settings() map[string]json.RawMessage
	PutSetting(key string, value json.RawMessage)
}

// ProfileService holds the single service-info record and the app-wide
// settings blob. The standalone serviceInfo record is canonical; some
// legacy builds wrote it inside the settings blob instead, so the read
// path migrates from there once when the canonical record is missing.
type ProfileService struct {
	store  *models.Store
	logger providers.Logger
}

func NewProfileService(store *models.Store, logger providers.Logger) ProfileServiceInterface {
	return &ProfileService{store: store, logger: logger}
}

func (ps *ProfileService) Get() (*models.ServiceProfile, bool) {
	if profile, ok := ps.store.ServiceInfo(); ok {
		return profile, true
	}

	// Legacy location: settings.serviceInfo. Migrate on first read.
	raw, ok := ps.store.Setting(legacyServiceInfoKey)
	if !ok {
		return nil, false
	}
	var profile models.ServiceProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		ps.logger.Warnf(providers.TypeStore, "Legacy settings.serviceInfo is unreadable: %s", err)
		return nil, false
	}
	ps.store.PutServiceInfo(&profile)
	ps.logger.Infof(providers.TypeStore, "Migrated service info from settings blob to its own record")
	return &profile, true
}

// Save establishes or edits the service profile. End date is start + 1
// year, computed here and never re-derived. Start-date edits outside
// the first-month grace window consume one of the remaining changes,
// clamped at zero.
func (ps *ProfileService) Save(name, stateOfDeployment, startDate string) (*models.ServiceProfile, error) {
	start, ok := models.ParseInstant(startDate)
	if !ok {
		return nil, ErrInvalidStartDate
	}

	now := time.Now()
	profile := &models.ServiceProfile{
		Name:              name,
		StateOfDeployment: stateOfDeployment,
		StartDate:         models.FormatInstant(start),
		EndDate:           models.FormatInstant(start.AddDate(1, 0, 0)),
		TotalDays:         serviceTotalDays,
		DateChangesLeft:   defaultDateChanges,
		DateFirstSet:      models.FormatInstant(now),
	}

	existing, exists := ps.Get()
	if exists {
		profile.DateChangesLeft = existing.DateChangesLeft
		profile.DateFirstSet = existing.DateFirstSet

		startChanged := !sameStoredDay(existing.StartDate, profile.StartDate)
		if startChanged && !ps.inGraceWindow(existing, now) {
			profile.DateChangesLeft = existing.DateChangesLeft - 1
			if profile.DateChangesLeft < 0 {
				profile.DateChangesLeft = 0
			}
			ps.logger.Infof(providers.TypeStore, "Start date changed outside grace window, %d change(s) left", profile.DateChangesLeft)
		}
	}

	ps.store.PutServiceInfo(profile)
	return profile, nil
}

func (ps *ProfileService) inGraceWindow(profile *models.ServiceProfile, now time.Time) bool {
	firstSet, ok := models.ParseInstant(profile.DateFirstSet)
	if !ok {
		return false
	}
	return now.Before(firstSet.AddDate(0, 0, startDateGraceDays))
}

func (ps *ProfileService) Settings() map[string]json.RawMessage {
	return ps.store.Settings()
}

func (ps *ProfileService) PutSetting(key string, value json.RawMessage) {
	ps.store.PutSetting(key, value)
}

func sameStoredDay(a, b string) bool {
	ta, okA := models.ParseInstant(a)
	tb, okB := models.ParseInstant(b)
	if !okA || !okB {
		return false
	}
	return models.SameCalendarDay(ta, tb)
}
