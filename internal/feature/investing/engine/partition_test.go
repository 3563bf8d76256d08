package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
)

func TestPartition_MonthlyWindows(t *testing.T) {
	t.Parallel()

	iv := entity.Interval{Begin: date(2000, 1, 1), End: date(2010, 1, 1)}
	windows, err := Partition(iv, Years(5), Months(1))
	require.NoError(t, err)

	// windows ending 2005-01-01 .. 2009-12-01
	require.Len(t, windows, 60)
	assert.Equal(t, entity.Interval{Begin: date(2000, 1, 1), End: date(2005, 1, 1)}, windows[0])
	assert.Equal(t, entity.Interval{Begin: date(2004, 12, 1), End: date(2009, 12, 1)}, windows[59])

	for i, w := range windows {
		assert.Equal(t, Years(5).AddTo(w.Begin), w.End, "window %d length", i)
		assert.False(t, w.Begin.Before(iv.Begin))
		assert.True(t, w.End.Before(iv.End))
		if i > 0 {
			assert.True(t, w.Begin.After(windows[i-1].Begin))
		}
	}
}

func TestPartition_EndIsExclusive(t *testing.T) {
	t.Parallel()

	// a window ending exactly at interval end is not emitted
	iv := entity.Interval{Begin: date(2000, 1, 1), End: date(2001, 1, 1)}
	windows, err := Partition(iv, Years(1), Months(1))
	require.NoError(t, err)
	assert.Empty(t, windows)

	iv.End = date(2001, 1, 2)
	windows, err = Partition(iv, Years(1), Months(1))
	require.NoError(t, err)
	assert.Len(t, windows, 1)
}

func TestPartition_DurationLongerThanInterval(t *testing.T) {
	t.Parallel()

	iv := entity.Interval{Begin: date(2000, 1, 1), End: date(2003, 1, 1)}
	windows, err := Partition(iv, Years(5), Months(1))
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestPartition_CumulativeClamping(t *testing.T) {
	t.Parallel()

	// endpoints are advanced from the previous window, so a clamped day stays clamped
	iv := entity.Interval{Begin: date(2001, 1, 31), End: date(2001, 6, 1)}
	windows, err := Partition(iv, Months(1), Months(1))
	require.NoError(t, err)
	require.NotEmpty(t, windows)
	assert.Equal(t, date(2001, 2, 28), windows[1].Begin)
	assert.Equal(t, date(2001, 3, 28), windows[2].Begin)
}

func TestPartition_FixedSteps(t *testing.T) {
	t.Parallel()

	iv := entity.Interval{Begin: date(2000, 1, 1), End: date(2010, 1, 1)}
	windows, err := Partition(iv, FixedYears(5), FixedMonths(1))
	require.NoError(t, err)
	require.NotEmpty(t, windows)
	for _, w := range windows {
		assert.Equal(t, FixedYears(5).D, w.Span())
	}
}

func TestPartition_InvalidParameters(t *testing.T) {
	t.Parallel()

	iv := entity.Interval{Begin: date(2000, 1, 1), End: date(2010, 1, 1)}
	tests := []struct {
		name      string
		interval  entity.Interval
		duration  Step
		increment Step
	}{
		{"zero increment", iv, Years(5), CalendarStep{}},
		{"negative increment", iv, Years(5), Months(-1)},
		{"zero duration", iv, FixedStep{}, Months(1)},
		{"begin after end", entity.Interval{Begin: iv.End, End: iv.Begin}, Years(5), Months(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Partition(tt.interval, tt.duration, tt.increment)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestPartition_EmptyInterval(t *testing.T) {
	t.Parallel()

	d := date(2000, 1, 1)
	windows, err := Partition(entity.Interval{Begin: d, End: d}, Months(1), Months(1))
	require.NoError(t, err)
	assert.Empty(t, windows)
}
