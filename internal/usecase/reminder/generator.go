package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// DaysRemaining counts calendar days from today until the due date.
// Both values are reduced to their calendar date first, so the time of day never matters.
func DaysRemaining(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24)
}

// Classify maps the days remaining to an urgency band
func Classify(days int) domain.Urgency {
	switch {
	case days < 0:
		return domain.UrgencyOverdue
	case days == 0:
		return domain.UrgencyDueToday
	case days <= 3:
		return domain.UrgencyUrgent
	case days <= 7:
		return domain.UrgencyUpcoming
	default:
		return domain.UrgencyOK
	}
}

// Label is the user-facing text shown next to an envelope's due date
func Label(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Venció hace %d días", -days)
	case days == 0:
		return "Vence hoy"
	case days == 1:
		return "Vence mañana"
	default:
		return fmt.Sprintf("%d días restantes", days)
	}
}

// GenerateReminders builds a reminder for every envelope that has a due date.
//
// Logic:
//   - Envelopes without a due date are skipped
//   - Reminders are ordered most urgent first (overdue, then soonest), ties by title
func GenerateReminders(envelopes []*domain.Envelope, today time.Time) []domain.EnvelopeReminder {
	reminders := make([]domain.EnvelopeReminder, 0, len(envelopes))
	for _, env := range envelopes {
		if env.DueDate == nil {
			continue
		}
		days := DaysRemaining(*env.DueDate, today)
		reminders = append(reminders, domain.EnvelopeReminder{
			EnvelopeID:    env.ID,
			Title:         env.Title,
			DueDate:       *env.DueDate,
			DaysRemaining: days,
			Urgency:       Classify(days),
			Label:         Label(days),
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].DaysRemaining != reminders[j].DaysRemaining {
			return reminders[i].DaysRemaining < reminders[j].DaysRemaining
		}
		return reminders[i].Title < reminders[j].Title
	})

	return reminders
}

// UrgencyOf returns the urgency of a single envelope, UrgencyNone when it has no due date
func UrgencyOf(env *domain.Envelope, today time.Time) domain.Urgency {
	if env.DueDate == nil {
		return domain.UrgencyNone
	}
	return Classify(DaysRemaining(*env.DueDate, today))
}
