package crystallizer

import (
	"fmt"
	"math"
)

// Profile names accepted by Config.Profile.
const (
	ProfileLinear      = "linear"
	ProfileExponential = "exponential"
	ProfileConstantS   = "constant-supersaturation"
)

// ProfileParams holds the cooling-policy set points. Defaults match the
// reference batch recipe.
type ProfileParams struct {
	FinalTemp    float64 // °C, ramp target and hard floor
	ExpRate      float64 // 1/s, exponential relaxation constant
	SetpointS    float64 // supersaturation held by the feedback profile
	FeedbackGain float64 // °C per step per unit supersaturation error
}

// DefaultProfileParams returns the reference set points.
func DefaultProfileParams() ProfileParams {
	return ProfileParams{
		FinalTemp:    35.0,
		ExpRate:      0.003,
		SetpointS:    0.05,
		FeedbackGain: 0.3,
	}
}

// coolingProfile maps the elapsed time and current state to the next
// temperature. tInit is the batch start temperature; t the elapsed seconds.
type coolingProfile func(tInit, tCur, t, duration, s float64) float64

// profileFor resolves a profile name. Unknown names are configuration
// errors, reported before the run starts.
func (p ProfileParams) profileFor(name string) (coolingProfile, error) {
	switch name {
	case ProfileLinear:
		return func(tInit, _, t, duration, _ float64) float64 {
			return tInit - (tInit-p.FinalTemp)*(t/duration)
		}, nil
	case ProfileExponential:
		return func(tInit, _, t, _, _ float64) float64 {
			return p.FinalTemp + (tInit-p.FinalTemp)*math.Exp(-p.ExpRate*t)
		}, nil
	case ProfileConstantS:
		return func(_, tCur, _, _, s float64) float64 {
			return math.Max(tCur-p.FeedbackGain*(s-p.SetpointS), p.FinalTemp)
		}, nil
	}
	return nil, fmt.Errorf("crystallizer config: unknown cooling profile %q", name)
}

// ProfileNames lists the supported cooling policies.
func ProfileNames() []string {
	return []string{ProfileLinear, ProfileExponential, ProfileConstantS}
}
