package domain

import (
	"time"

	"github.com/google/uuid"
)

// Urgency classifies how close an envelope's due date is
type Urgency string

const (
	UrgencyNone     Urgency = "NONE"      // No due date
	UrgencyOverdue  Urgency = "OVERDUE"   // Due date has passed
	UrgencyDueToday Urgency = "DUE_TODAY" // Due today
	UrgencyUrgent   Urgency = "URGENT"    // 1 to 3 days left
	UrgencyUpcoming Urgency = "UPCOMING"  // 4 to 7 days left
	UrgencyOK       Urgency = "OK"        // More than a week left
)

// EnvelopeReminder is a derived, non-persisted view of an envelope's due date
type EnvelopeReminder struct {
	EnvelopeID    uuid.UUID
	Title         string
	DueDate       time.Time
	DaysRemaining int // Negative when overdue
	Urgency       Urgency
	Label         string
}
