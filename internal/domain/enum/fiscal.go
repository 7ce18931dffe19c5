package enum

// FiscalStatus represents the fiscal situation of a document in the XML records
type FiscalStatus string

const (
	FiscalStatusNormal    FiscalStatus = "NORMAL"
	FiscalStatusCancelada FiscalStatus = "CANCELADA"
	FiscalStatusDenegada  FiscalStatus = "DENEGADA"
)

// IsValid reports whether the fiscal status is one of the known values
func (s FiscalStatus) IsValid() bool {
	switch s {
	case FiscalStatusNormal, FiscalStatusCancelada, FiscalStatusDenegada:
		return true
	}
	return false
}

// IsCanceled reports whether the document was canceled or denied by the fiscal authority
func (s FiscalStatus) IsCanceled() bool {
	return s == FiscalStatusCancelada || s == FiscalStatusDenegada
}

// DocumentType represents how the sale behind a fiscal document was transacted
type DocumentType string

const (
	DocumentTypePagaNoDia DocumentType = "PAGA_NO_DIA"
	DocumentTypeFaturada  DocumentType = "FATURADA"
	DocumentTypeDevolucao DocumentType = "DEVOLUCAO"
)

// IsValid reports whether the document type is one of the known values
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePagaNoDia, DocumentTypeFaturada, DocumentTypeDevolucao:
		return true
	}
	return false
}
