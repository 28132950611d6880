package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ServiceClass is one of the three 5G service classes a device belongs to.
type ServiceClass string

const (
	// MassiveIoT is massive machine-type communication (mMTC).
	MassiveIoT ServiceClass = "mMTC"
	// EnhancedBroadband is enhanced mobile broadband (eMBB).
	EnhancedBroadband ServiceClass = "eMBB"
	// UltraReliableLowLatency is ultra-reliable low-latency communication (URLLC).
	UltraReliableLowLatency ServiceClass = "URLLC"
)

// ServiceClasses lists every known class in population order.
func ServiceClasses() []ServiceClass {
	return []ServiceClass{MassiveIoT, EnhancedBroadband, UltraReliableLowLatency}
}

// ParseServiceClass maps a wire tag onto a ServiceClass.
func ParseServiceClass(tag string) (ServiceClass, error) {
	for _, class := range ServiceClasses() {
		if string(class) == tag {
			return class, nil
		}
	}
	return "", fmt.Errorf("unknown service class: %q", tag)
}

// Distribution validation errors.
var (
	ErrEmptyDistribution    = errors.New("distribution has no service classes")
	ErrDistributionTotal    = errors.New("distribution shares must sum to 1")
	ErrDuplicateClass       = errors.New("service class listed more than once")
	ErrInvalidShareFraction = errors.New("share fraction must be within (0, 1]")
)

// shareTolerance absorbs float rounding in the sum of the shares.
const shareTolerance = 1e-9

// Share is one entry of a population distribution.
type Share struct {
	Class    ServiceClass
	Fraction float64
}

// Distribution is an ordered categorical distribution over service classes.
// The order decides how generated devices are grouped.
type Distribution []Share

// DefaultDistribution returns the 60/30/10 mMTC/eMBB/URLLC split.
func DefaultDistribution() Distribution {
	return Distribution{
		{Class: MassiveIoT, Fraction: 0.60},
		{Class: EnhancedBroadband, Fraction: 0.30},
		{Class: UltraReliableLowLatency, Fraction: 0.10},
	}
}

// Total returns the sum of all fractions.
func (d Distribution) Total() float64 {
	var sum float64
	for _, s := range d {
		sum += s.Fraction
	}
	return sum
}

// Validate checks that d is non-empty, names each class once and that its
// fractions lie in (0, 1] and sum to 1.
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDistribution
	}

	seen := make(map[ServiceClass]struct{}, len(d))
	for _, s := range d {
		if _, dup := seen[s.Class]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateClass, s.Class)
		}
		seen[s.Class] = struct{}{}

		if math.IsNaN(s.Fraction) || s.Fraction <= 0 || s.Fraction > 1 {
			return fmt.Errorf("%w: %s=%g", ErrInvalidShareFraction, s.Class, s.Fraction)
		}
	}

	if total := d.Total(); math.Abs(total-1) > shareTolerance {
		return fmt.Errorf("%w: got %g", ErrDistributionTotal, total)
	}

	return nil
}

// ParseDistribution reads a distribution written as comma separated
// "tag:fraction" pairs, e.g. "mMTC:0.6,eMBB:0.3,URLLC:0.1". The order of the
// pairs is kept. The result is validated.
func ParseDistribution(raw string) (Distribution, error) {
	var dist Distribution
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		tag, fraction, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed share %q, want tag:fraction", pair)
		}

		class, err := ParseServiceClass(strings.TrimSpace(tag))
		if err != nil {
			return nil, err
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(fraction), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidShareFraction, class, fraction)
		}

		dist = append(dist, Share{Class: class, Fraction: value})
	}

	if err := dist.Validate(); err != nil {
		return nil, err
	}

	return dist, nil
}

// String renders d in the form ParseDistribution reads.
func (d Distribution) String() string {
	parts := make([]string, 0, len(d))
	for _, s := range d {
		parts = append(parts, string(s.Class)+":"+strconv.FormatFloat(s.Fraction, 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}
