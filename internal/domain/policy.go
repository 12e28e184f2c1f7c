package domain

import "time"

// OrgPolicy per-organisation scheduling policy consumed by the checks.
// Populated once before dispatch; absent settings fall back to the defaults
// below.
type OrgPolicy struct {
	// BlockOnClosure when true, closure conflicts are errors instead of warnings
	BlockOnClosure bool

	// TravelBufferMinutes minimum minutes required between a teacher's
	// lessons at different locations (0 = no buffer)
	TravelBufferMinutes int

	// Timezone IANA timezone used to resolve day-of-week and time-of-day
	Timezone string
}

// DefaultOrgPolicy policy applied when the organisation has no settings row
func DefaultOrgPolicy() OrgPolicy {
	return OrgPolicy{Timezone: DefaultTimezone}
}

// HasTravelBuffer returns true if a travel buffer between locations is configured
func (p *OrgPolicy) HasTravelBuffer() bool {
	return p.TravelBufferMinutes > 0
}

// TravelBuffer returns the configured buffer as a duration
func (p *OrgPolicy) TravelBuffer() time.Duration {
	return time.Duration(p.TravelBufferMinutes) * time.Minute
}

// Location resolves the policy timezone, falling back to UTC when the name
// is empty or unknown.
func (p *OrgPolicy) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
