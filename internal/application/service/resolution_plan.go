package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
)

// ResolutionPayload carries the optional operator inputs for a resolution
type ResolutionPayload struct {
	VendorCode string `json:"vendor_code,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// DocumentMutation describes how a resolution changes the fiscal record
type DocumentMutation struct {
	FinalVendor                string
	ForcePaymentDateToEmission bool
	ForceDocumentType          *enum.DocumentType
	ReturnReference            *string
	// ReportVendor is set when adjustment legs carry the vendor shift: the
	// closing report event must then stay on the legs' debit side, or the
	// shift counts twice
	ReportVendor string
}

// LedgerAdjustment is one signed compensating event a resolution appends to the
// ledger. Two-sided adjustments are two separate legs, never netted; the debit
// leg always comes first.
type LedgerAdjustment struct {
	Type     enum.LedgerEventType
	Subtype  enum.LedgerEventSubtype
	Vendor   string
	Value    decimal.Decimal
	RealDate *time.Time
}

// ResolutionPlan is the pure outcome of applying an action to a divergence:
// the document mutation plus zero or more ledger adjustments, in apply order.
type ResolutionPlan struct {
	Mutation    DocumentMutation
	Adjustments []LedgerAdjustment
}

// transferLegs moves a signed amount from one vendor to another as a
// debit/credit pair of adjustment events
func transferLegs(from, to string, signed decimal.Decimal) []LedgerAdjustment {
	return []LedgerAdjustment{
		{Type: enum.LedgerEventAjuste, Subtype: enum.LedgerSubtypeManual, Vendor: from, Value: signed.Neg()},
		{Type: enum.LedgerEventAjuste, Subtype: enum.LedgerSubtypeManual, Vendor: to, Value: signed},
	}
}

// PlanResolution maps (divergence type, action, payload) to the resulting
// document mutation and compensating ledger adjustments. Actions outside the
// divergence type's allowed set are rejected; nothing is written here.
func PlanResolution(record *entity.FiscalRecord, action enum.ResolutionAction, payload ResolutionPayload) (*ResolutionPlan, error) {
	if record.DivergenceType == nil {
		return nil, apperror.NewBadRequestError("Record carries no divergence to resolve")
	}
	divergence := *record.DivergenceType

	if !enum.IsActionValidFor(divergence, action) {
		return nil, apperror.ErrInvalidActionForDivergence
	}

	movementVendor := ""
	if record.MovementVendor != nil {
		movementVendor = *record.MovementVendor
	}
	value := record.Value

	plan := &ResolutionPlan{}

	switch divergence {
	case enum.DivergenceVendedorDivergente:
		switch action {
		case enum.ActionUseMov:
			plan.Mutation.FinalVendor = movementVendor
		case enum.ActionUseXML:
			plan.Mutation.FinalVendor = record.XMLVendor
			plan.Mutation.ReportVendor = movementVendor
			plan.Adjustments = transferLegs(movementVendor, record.XMLVendor, value)
		case enum.ActionManual:
			if payload.VendorCode == "" {
				return nil, apperror.NewBadRequestError("Manual resolution requires a vendor code")
			}
			plan.Mutation.FinalVendor = payload.VendorCode
		}

	case enum.DivergenceDataDivergente:
		// Either way the vendor attribution is already agreed
		plan.Mutation.FinalVendor = movementVendor
		if action == enum.ActionUseXML {
			plan.Mutation.ForcePaymentDateToEmission = true
		}

	case enum.DivergenceDevolucaoSemReferencia:
		switch action {
		case enum.ActionManualRef:
			if payload.Reference == "" {
				return nil, apperror.NewBadRequestError("Linking a return requires the original invoice reference")
			}
			ref := payload.Reference
			plan.Mutation.ReturnReference = &ref
			plan.Mutation.FinalVendor = entity.VendorIndefinido
		case enum.ActionLoss:
			plan.Mutation.FinalVendor = entity.VendorLoja
			plan.Mutation.ReportVendor = entity.VendorIndefinido
			// Returns carry negative value; the loss moves it onto the store
			plan.Adjustments = transferLegs(entity.VendorIndefinido, entity.VendorLoja, value.Neg())
		}

	case enum.DivergenceMovimentoComNFSemXML, enum.DivergenceNFPagaSemXML, enum.DivergenceOutros:
		// Acknowledged only; keep the attribution the movement recorded
		plan.Mutation.FinalVendor = movementVendor
		if plan.Mutation.FinalVendor == "" {
			plan.Mutation.FinalVendor = record.XMLVendor
		}
		if plan.Mutation.FinalVendor == "" {
			plan.Mutation.FinalVendor = entity.VendorIndefinido
		}

	case enum.DivergenceNFCanceladaComMovimento:
		switch action {
		case enum.ActionEstorno:
			plan.Mutation.FinalVendor = entity.VendorEstornado
			plan.Adjustments = []LedgerAdjustment{{
				Type:    enum.LedgerEventAjuste,
				Subtype: enum.LedgerSubtypeEstorno,
				Vendor:  movementVendor,
				Value:   value.Neg(),
			}}
		case enum.ActionException:
			plan.Mutation.FinalVendor = movementVendor
		}

	case enum.DivergenceXMLSemMovimento:
		switch action {
		case enum.ActionFaturar:
			faturada := enum.DocumentTypeFaturada
			plan.Mutation.ForceDocumentType = &faturada
			plan.Mutation.FinalVendor = record.XMLVendor
			plan.Adjustments = []LedgerAdjustment{{
				Type:     enum.LedgerEventVenda,
				Subtype:  enum.LedgerSubtypeFaturada,
				Vendor:   record.XMLVendor,
				Value:    value,
				RealDate: &record.EmissionDate,
			}}
		case enum.ActionWait:
			// No mutation beyond closing the divergence; attribution stays open
			plan.Mutation.FinalVendor = entity.VendorIndefinido
		}
	}

	return plan, nil
}
