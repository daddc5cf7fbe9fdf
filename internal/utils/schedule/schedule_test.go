package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MaxTecnology/rede-trade-back/internal/utils/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDueDate(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		closeDay int
		dueDay   int
		want     time.Time
	}{
		{
			name:  "before close day stays in current month",
			today: date(2024, time.March, 10), closeDay: 20, dueDay: 5,
			want: date(2024, time.March, 5),
		},
		{
			name:  "on close day rolls to next month",
			today: date(2024, time.March, 20), closeDay: 20, dueDay: 5,
			want: date(2024, time.April, 5),
		},
		{
			name:  "after close day rolls to next month",
			today: date(2024, time.March, 25), closeDay: 20, dueDay: 5,
			want: date(2024, time.April, 5),
		},
		{
			name:  "december rollover crosses the year",
			today: date(2024, time.December, 28), closeDay: 25, dueDay: 10,
			want: date(2025, time.January, 10),
		},
		{
			name:  "due day beyond month length normalizes forward",
			today: date(2024, time.April, 1), closeDay: 15, dueDay: 31,
			want: date(2024, time.May, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.ComputeDueDate(tt.today, tt.closeDay, tt.dueDay)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
