package enum

// LedgerEventType represents the kind of monetary event appended to the ledger
type LedgerEventType string

const (
	LedgerEventVenda        LedgerEventType = "VENDA"
	LedgerEventDevolucao    LedgerEventType = "DEVOLUCAO"
	LedgerEventCancelamento LedgerEventType = "CANCELAMENTO"
	LedgerEventAjuste       LedgerEventType = "AJUSTE"
	LedgerEventPagamento    LedgerEventType = "PAGAMENTO"
)

// IsValid reports whether the event type is one of the known values
func (t LedgerEventType) IsValid() bool {
	switch t {
	case LedgerEventVenda, LedgerEventDevolucao, LedgerEventCancelamento,
		LedgerEventAjuste, LedgerEventPagamento:
		return true
	}
	return false
}

// IsReduction reports whether the event type reduces an open receivable balance
func (t LedgerEventType) IsReduction() bool {
	return t == LedgerEventDevolucao || t == LedgerEventCancelamento
}

// LedgerEventSubtype qualifies a ledger event within its type
type LedgerEventSubtype string

const (
	LedgerSubtypeFaturada LedgerEventSubtype = "FATURADA"
	LedgerSubtypeAVista   LedgerEventSubtype = "A_VISTA"
	LedgerSubtypeEstorno  LedgerEventSubtype = "ESTORNO"
	LedgerSubtypeManual   LedgerEventSubtype = "MANUAL"
	LedgerSubtypeOutros   LedgerEventSubtype = "OUTROS"
)

// IsValid reports whether the subtype is one of the known values
func (s LedgerEventSubtype) IsValid() bool {
	switch s {
	case LedgerSubtypeFaturada, LedgerSubtypeAVista, LedgerSubtypeEstorno,
		LedgerSubtypeManual, LedgerSubtypeOutros:
		return true
	}
	return false
}
