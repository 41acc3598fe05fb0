package services

import (
	"time"

	"cjd/internal/models"
)

// Badge categories.
const (
	CategoryMilestones  = "milestones"
	CategoryConsistency = "consistency"
	CategoryExplorer    = "explorer"
	CategoryService     = "service"
)

// BadgeDefinition is a static, code-defined achievement: identity plus
// a pure condition over the accumulated progress counters and the
// service profile (which may be nil when no profile exists yet).
type BadgeDefinition struct {
	ID          string
	Title       string
	Description string
	Category    string
	Icon        string
	Condition   func(p *models.BadgeProgress, sp *models.ServiceProfile) bool
}

func entriesAtLeast(n int) func(*models.BadgeProgress, *models.ServiceProfile) bool {
	return func(p *models.BadgeProgress, _ *models.ServiceProfile) bool {
		return p.EntriesCount >= n
	}
}

func streakAtLeast(n int) func(*models.BadgeProgress, *models.ServiceProfile) bool {
	return func(p *models.BadgeProgress, _ *models.ServiceProfile) bool {
		return p.StreakDays >= n
	}
}

// serviceElapsedAtLeast is true once the given fraction of the service
// year has passed according to the profile dates.
func serviceElapsedAtLeast(fraction float64) func(*models.BadgeProgress, *models.ServiceProfile) bool {
	return func(_ *models.BadgeProgress, sp *models.ServiceProfile) bool {
		if sp == nil {
			return false
		}
		start, okS := models.ParseInstant(sp.StartDate)
		end, okE := models.ParseInstant(sp.EndDate)
		if !okS || !okE || !end.After(start) {
			return false
		}
		elapsed := time.Since(start).Seconds() / end.Sub(start).Seconds()
		return elapsed >= fraction
	}
}

// BadgeDefinitions is the full static registry, in display order.
func BadgeDefinitions() []BadgeDefinition {
	return []BadgeDefinition{
		{
			ID: "first_entry", Title: "First Steps",
			Description: "Write your first journal entry",
			Category:    CategoryMilestones, Icon: "pencil",
			Condition: entriesAtLeast(1),
		},
		{
			ID: "entries_10", Title: "Getting Into It",
			Description: "Write 10 journal entries",
			Category:    CategoryMilestones, Icon: "notebook",
			Condition: entriesAtLeast(10),
		},
		{
			ID: "entries_50", Title: "Dedicated Writer",
			Description: "Write 50 journal entries",
			Category:    CategoryMilestones, Icon: "books",
			Condition: entriesAtLeast(50),
		},
		{
			ID: "entries_100", Title: "Century Club",
			Description: "Write 100 journal entries",
			Category:    CategoryMilestones, Icon: "trophy",
			Condition: entriesAtLeast(100),
		},
		{
			ID: "streak_3", Title: "Warming Up",
			Description: "Journal 3 days in a row",
			Category:    CategoryConsistency, Icon: "flame",
			Condition: streakAtLeast(3),
		},
		{
			ID: "streak_7", Title: "One Full Week",
			Description: "Journal 7 days in a row",
			Category:    CategoryConsistency, Icon: "calendar",
			Condition: streakAtLeast(7),
		},
		{
			ID: "streak_30", Title: "Habit Formed",
			Description: "Journal 30 days in a row",
			Category:    CategoryConsistency, Icon: "medal",
			Condition: streakAtLeast(30),
		},
		{
			ID: "tag_explorer", Title: "Tag Explorer",
			Description: "Use 5 different tags",
			Category:    CategoryExplorer, Icon: "tags",
			Condition: func(p *models.BadgeProgress, _ *models.ServiceProfile) bool {
				return len(p.TagsUsed) >= 5
			},
		},
		{
			ID: "searcher", Title: "Memory Lane",
			Description: "Search your journal 10 times",
			Category:    CategoryExplorer, Icon: "magnifier",
			Condition: func(p *models.BadgeProgress, _ *models.ServiceProfile) bool {
				return p.SearchCount >= 10
			},
		},
		{
			ID: "archivist", Title: "Archivist",
			Description: "Export your first backup",
			Category:    CategoryExplorer, Icon: "box",
			Condition: func(p *models.BadgeProgress, _ *models.ServiceProfile) bool {
				return p.ExportCount >= 1
			},
		},
		{
			ID: "halfway_there", Title: "Halfway There",
			Description: "Reach the midpoint of your service year",
			Category:    CategoryService, Icon: "flag",
			Condition: serviceElapsedAtLeast(0.5),
		},
		{
			ID: "service_complete", Title: "Passing Out",
			Description: "Complete your service year",
			Category:    CategoryService, Icon: "star",
			Condition: serviceElapsedAtLeast(1.0),
		},
	}
}
