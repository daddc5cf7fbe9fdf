package schedule

import "time"

// ComputeDueDate derives the due date of a commission billing from the payer
// account's billing-cycle anchors. If today's day-of-month has reached the
// close day, the invoice rolls into next month's due day; otherwise it falls
// due on this month's due day. time.Date normalizes out-of-range days (e.g.
// due day 31 in April becomes May 1), matching calendar arithmetic.
func ComputeDueDate(today time.Time, closeDay, dueDay int) time.Time {
	year, month, _ := today.Date()
	due := time.Date(year, month, dueDay, 0, 0, 0, 0, today.Location())
	if today.Day() >= closeDay {
		due = due.AddDate(0, 1, 0)
	}
	return due
}
