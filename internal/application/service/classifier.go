package service

import (
	"time"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// ClassifyRecord assigns exactly one divergence tag to a fiscal record, or
// marks it OK when the movement and XML sides agree. The checks run in
// precedence order: fiscal cancellation with recorded movement outranks every
// vendor or date concern, presence mismatches outrank attribute mismatches,
// and vendor mismatches outrank date mismatches.
func ClassifyRecord(r *entity.FiscalRecord) (enum.DivergenceStatus, *enum.DivergenceType) {
	tag := func(t enum.DivergenceType) (enum.DivergenceStatus, *enum.DivergenceType) {
		return enum.DivergenceStatusDivergente, &t
	}

	if r.FiscalStatus.IsCanceled() && r.HasMovement() {
		return tag(enum.DivergenceNFCanceladaComMovimento)
	}

	if r.HasXML() && !r.HasMovement() {
		if r.FiscalStatus.IsCanceled() {
			// Canceled document that nobody moved money for: nothing to reconcile
			return enum.DivergenceStatusOK, nil
		}
		return tag(enum.DivergenceXMLSemMovimento)
	}

	if r.HasMovement() && !r.HasXML() {
		if r.DocumentType == enum.DocumentTypePagaNoDia {
			return tag(enum.DivergenceNFPagaSemXML)
		}
		return tag(enum.DivergenceMovimentoComNFSemXML)
	}

	if r.DocumentType == enum.DocumentTypeDevolucao && (r.ReturnReference == nil || *r.ReturnReference == "") {
		return tag(enum.DivergenceDevolucaoSemReferencia)
	}

	if r.HasMovement() && r.HasXML() && *r.MovementVendor != r.XMLVendor {
		return tag(enum.DivergenceVendedorDivergente)
	}

	if r.PaymentDate != nil && !sameDay(*r.PaymentDate, r.EmissionDate) {
		return tag(enum.DivergenceDataDivergente)
	}

	if !r.HasMovement() && !r.HasXML() {
		return tag(enum.DivergenceOutros)
	}

	return enum.DivergenceStatusOK, nil
}

// sameDay compares dates ignoring any time-of-day part
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
