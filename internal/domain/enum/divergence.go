package enum

// DivergenceStatus marks whether a fiscal record still carries an unresolved divergence
type DivergenceStatus string

const (
	DivergenceStatusOK         DivergenceStatus = "OK"
	DivergenceStatusDivergente DivergenceStatus = "DIVERGENCIA"
)

// DivergenceType classifies the mismatch between movement data and fiscal XML data.
// The set is closed; classification assigns exactly one tag per record.
type DivergenceType string

const (
	DivergenceVendedorDivergente      DivergenceType = "VENDEDOR_DIVERGENTE"
	DivergenceDataDivergente          DivergenceType = "DATA_DIVERGENTE"
	DivergenceDevolucaoSemReferencia  DivergenceType = "DEVOLUCAO_SEM_REFERENCIA"
	DivergenceMovimentoComNFSemXML    DivergenceType = "MOVIMENTO_COM_NF_SEM_XML"
	DivergenceNFPagaSemXML            DivergenceType = "NF_PAGA_SEM_XML"
	DivergenceNFCanceladaComMovimento DivergenceType = "NF_CANCELADA_COM_MOVIMENTO"
	DivergenceXMLSemMovimento         DivergenceType = "XML_SEM_MOVIMENTO"
	DivergenceOutros                  DivergenceType = "OUTROS"
)

// AllDivergenceTypes lists every divergence tag
func AllDivergenceTypes() []DivergenceType {
	return []DivergenceType{
		DivergenceVendedorDivergente,
		DivergenceDataDivergente,
		DivergenceDevolucaoSemReferencia,
		DivergenceMovimentoComNFSemXML,
		DivergenceNFPagaSemXML,
		DivergenceNFCanceladaComMovimento,
		DivergenceXMLSemMovimento,
		DivergenceOutros,
	}
}

// IsValid reports whether the divergence type is one of the eight known tags
func (t DivergenceType) IsValid() bool {
	switch t {
	case DivergenceVendedorDivergente, DivergenceDataDivergente,
		DivergenceDevolucaoSemReferencia, DivergenceMovimentoComNFSemXML,
		DivergenceNFPagaSemXML, DivergenceNFCanceladaComMovimento,
		DivergenceXMLSemMovimento, DivergenceOutros:
		return true
	}
	return false
}
