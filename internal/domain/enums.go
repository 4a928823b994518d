package domain

// AdapterStatus represents the outcome variant of an integration attempt
type AdapterStatus string

const (
	// AdapterStatusSimulated means the integration was not configured (or a
	// precondition was unmet) and no outbound call was made. Not an error.
	AdapterStatusSimulated AdapterStatus = "simulated"
	// AdapterStatusSuccess means the remote call completed with a 2xx.
	AdapterStatusSuccess AdapterStatus = "success"
	// AdapterStatusFailure means the call was attempted and failed.
	AdapterStatusFailure AdapterStatus = "failure"
)

// IsValid checks if the adapter status is valid
func (s AdapterStatus) IsValid() bool {
	switch s {
	case AdapterStatusSimulated, AdapterStatusSuccess, AdapterStatusFailure:
		return true
	default:
		return false
	}
}

// Attempted reports whether an outbound call was actually made.
func (s AdapterStatus) Attempted() bool {
	return s == AdapterStatusSuccess || s == AdapterStatusFailure
}
