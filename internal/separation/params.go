package separation

import (
	"errors"
	"fmt"
)

// ErrInvalidParams reports separation parameters outside their valid range.
var ErrInvalidParams = errors.New("invalid separation parameters")

// Default parameter values, in pixels.
const (
	DefaultMinCryptSize    = 2000
	DefaultDefectThreshold = 10
)

// Params configures a separation.
type Params struct {
	// MinCryptSize is the area floor in square pixels. Smaller contours are
	// never cut and are dropped from the output.
	MinCryptSize int `json:"min_crypt_size"`

	// DefectThreshold is the depth in pixels a convexity defect must exceed
	// to count as a possible cut site.
	DefectThreshold float64 `json:"defect_threshold"`

	// Logf receives debug messages about cut decisions. Nil disables them.
	Logf func(format string, args ...any) `json:"-"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		MinCryptSize:    DefaultMinCryptSize,
		DefectThreshold: DefaultDefectThreshold,
	}
}

// Validate checks that both thresholds are positive.
func (p Params) Validate() error {
	if p.MinCryptSize <= 0 {
		return fmt.Errorf("%w: min_crypt_size must be positive, got %d", ErrInvalidParams, p.MinCryptSize)
	}
	if p.DefectThreshold <= 0 {
		return fmt.Errorf("%w: defect_threshold must be positive, got %v", ErrInvalidParams, p.DefectThreshold)
	}
	return nil
}

// Debugf forwards a debug message to Logf when one is set.
func (p Params) Debugf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}
