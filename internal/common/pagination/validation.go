package pagination

import "fmt"

// Validate validates pagination parameters against the configuration.
// Returns an error if:
//   - offset is negative
//   - limit is negative, or greater than config.MaxLimit when a cap is configured
func (p Params) Validate(config Config) error {
	if p.Offset != nil && *p.Offset < 0 {
		return fmt.Errorf("offset must be a non-negative integer")
	}
	if p.Limit != nil {
		if *p.Limit < 0 {
			return fmt.Errorf("limit must be a non-negative integer")
		}
		if config.MaxLimit > 0 && *p.Limit > config.MaxLimit {
			return fmt.Errorf("limit must be between 0 and %d", config.MaxLimit)
		}
	}
	return nil
}

// IsWindowed reports whether either bound was supplied.
func (p Params) IsWindowed() bool {
	return p.Offset != nil || p.Limit != nil
}
