package engine

import (
	"fmt"
	"math"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
)

// Mode selects how gain multipliers are reported.
type Mode string

const (
	// ModeGain reports the raw multiplier, 1.0 is break-even.
	ModeGain Mode = "gain"
	// ModePercentage reports (gain - 1) * 100.
	ModePercentage Mode = "percentage"
	// ModeAnnualized reports gain ** (1 / years).
	ModeAnnualized Mode = "annualized"
	// ModeAnnualizedPercentage reports (gain ** (1 / years) - 1) * 100.
	ModeAnnualizedPercentage Mode = "annualized_percentage"
)

// ParseMode parses a mode name. The empty string is ModeGain.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeGain, nil
	case ModeGain, ModePercentage, ModeAnnualized, ModeAnnualizedPercentage:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidParameter, s)
	}
}

// Apply transforms every gain of d. investingDuration is the window length, used to annualize.
func (m Mode) Apply(d entity.GainDistribution, investingDuration Step) (entity.GainDistribution, error) {
	annualize := m == ModeAnnualized || m == ModeAnnualizedPercentage
	percent := m == ModePercentage || m == ModeAnnualizedPercentage
	if !annualize && !percent {
		return d, nil
	}

	years := 0.0
	if annualize {
		years = investingDuration.InYears()
		if years <= 0 {
			return entity.GainDistribution{}, fmt.Errorf("%w: cannot annualize over %v years", domain.ErrInvalidParameter, years)
		}
	}
	return d.Map(func(g float64) float64 {
		if annualize {
			g = math.Pow(g, 1/years)
		}
		if percent {
			g = (g - 1) * 100
		}
		return g
	}), nil
}
