package enum

// PeriodStatus represents the lifecycle state of a monthly closing period
type PeriodStatus string

const (
	PeriodStatusAberto  PeriodStatus = "ABERTO"
	PeriodStatusFechado PeriodStatus = "FECHADO"
)

// IsValid reports whether the status is one of the known values
func (s PeriodStatus) IsValid() bool {
	return s == PeriodStatusAberto || s == PeriodStatusFechado
}
