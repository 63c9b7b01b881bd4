package validation

import "salesdesk/internal/config"

// Limits holds the maximum lengths enforced on text fields
type Limits struct {
	DepartmentName int
	SellerName     int
	SellerEmail    int
}

// LimitsFromConfig copies the configured limits
func LimitsFromConfig(c config.LimitsConfig) Limits {
	return Limits{
		DepartmentName: c.DepartmentName,
		SellerName:     c.SellerName,
		SellerEmail:    c.SellerEmail,
	}
}

// DefaultLimits returns the limits of a default configuration
func DefaultLimits() Limits {
	return LimitsFromConfig(config.DefaultConfig().Limits)
}
