package enum

// ReceivableStatus represents the settlement state of an open receivable (título)
type ReceivableStatus string

const (
	ReceivableStatusAberta    ReceivableStatus = "ABERTA"
	ReceivableStatusVencida   ReceivableStatus = "VENCIDA"
	ReceivableStatusParcial   ReceivableStatus = "PARCIAL"
	ReceivableStatusPaga      ReceivableStatus = "PAGA"
	ReceivableStatusCancelada ReceivableStatus = "CANCELADA"
)

// IsValid reports whether the status is one of the known values
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusAberta, ReceivableStatusVencida, ReceivableStatusParcial,
		ReceivableStatusPaga, ReceivableStatusCancelada:
		return true
	}
	return false
}

// IsOpen reports whether the receivable can still receive settlements or reductions
func (s ReceivableStatus) IsOpen() bool {
	return s == ReceivableStatusAberta || s == ReceivableStatusVencida || s == ReceivableStatusParcial
}
