package engine

import (
	"investing_backend/internal/feature/investing/domain/entity"
)

// Partition splits interval into windows of length duration whose begins advance by increment.
//
// The first window is [interval.Begin, interval.Begin+duration). Both endpoints of a window are
// advanced by increment to get the next one. A window is emitted only while its end is strictly
// before interval.End, so a duration that does not fit yields no windows.
func Partition(interval entity.Interval, duration, increment Step) ([]entity.Interval, error) {
	if err := duration.Validate(); err != nil {
		return nil, err
	}
	if err := increment.Validate(); err != nil {
		return nil, err
	}
	if _, err := entity.NewInterval(interval.Begin, interval.End); err != nil {
		return nil, err
	}

	var windows []entity.Interval
	window := entity.Interval{Begin: interval.Begin, End: duration.AddTo(interval.Begin)}
	for window.End.Before(interval.End) {
		windows = append(windows, window)
		window = entity.Interval{
			Begin: increment.AddTo(window.Begin),
			End:   increment.AddTo(window.End),
		}
	}
	return windows, nil
}
