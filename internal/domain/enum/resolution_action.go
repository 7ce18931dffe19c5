package enum

// ResolutionAction is an operator choice when resolving a divergence
type ResolutionAction string

const (
	ActionUseMov    ResolutionAction = "USE_MOV"
	ActionUseXML    ResolutionAction = "USE_XML"
	ActionManual    ResolutionAction = "MANUAL"
	ActionManualRef ResolutionAction = "MANUAL_REF"
	ActionLoss      ResolutionAction = "LOSS"
	ActionAck       ResolutionAction = "ACK"
	ActionEstorno   ResolutionAction = "ESTORNO"
	ActionException ResolutionAction = "EXCEPTION"
	ActionFaturar   ResolutionAction = "FATURAR"
	ActionWait      ResolutionAction = "WAIT"
)

// actionLabels hold the human-readable prefix written into resolution audit notes
var actionLabels = map[ResolutionAction]string{
	ActionUseMov:    "Mantido vendedor do movimento",
	ActionUseXML:    "Adotado vendedor do XML",
	ActionManual:    "Vendedor atribuído manualmente",
	ActionManualRef: "Devolução vinculada à NF de origem",
	ActionLoss:      "Devolução assumida pela loja",
	ActionAck:       "Divergência reconhecida",
	ActionEstorno:   "Movimento estornado",
	ActionException: "Venda mantida como exceção",
	ActionFaturar:   "NF faturada a partir do XML",
	ActionWait:      "Aguardando movimento",
}

// Label returns the audit-note label for the action
func (a ResolutionAction) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

// validActions maps each divergence type to its closed set of allowed actions
var validActions = map[DivergenceType][]ResolutionAction{
	DivergenceVendedorDivergente:      {ActionUseMov, ActionUseXML, ActionManual},
	DivergenceDataDivergente:          {ActionUseMov, ActionUseXML},
	DivergenceDevolucaoSemReferencia:  {ActionManualRef, ActionLoss},
	DivergenceMovimentoComNFSemXML:    {ActionAck},
	DivergenceNFPagaSemXML:            {ActionAck},
	DivergenceNFCanceladaComMovimento: {ActionEstorno, ActionException},
	DivergenceXMLSemMovimento:         {ActionFaturar, ActionWait},
	DivergenceOutros:                  {ActionAck},
}

// ValidActionsFor returns the allowed actions for a divergence type
func ValidActionsFor(t DivergenceType) []ResolutionAction {
	return validActions[t]
}

// IsActionValidFor reports whether the action belongs to the divergence type's allowed set
func IsActionValidFor(t DivergenceType, a ResolutionAction) bool {
	for _, allowed := range validActions[t] {
		if allowed == a {
			return true
		}
	}
	return false
}
