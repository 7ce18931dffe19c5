package enum

// CommissionStatus represents the payout state of a computed commission
type CommissionStatus string

const (
	CommissionStatusPrevista CommissionStatus = "PREVISTA"
	CommissionStatusPaga     CommissionStatus = "PAGA"
)

// IsValid reports whether the status is one of the known values
func (s CommissionStatus) IsValid() bool {
	return s == CommissionStatusPrevista || s == CommissionStatusPaga
}
