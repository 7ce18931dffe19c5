package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
)

type closingFixture struct {
	svc            *ClosingService
	resolver       *DivergenceService
	closingRepo    *fakeClosingRepo
	fiscalRepo     *fakeFiscalRepo
	ledgerRepo     *fakeLedgerRepo
	receivableRepo *fakeReceivableRepo
	commissionRepo *fakeCommissionRepo
	vendorRepo     *fakeVendorRepo
}

func newClosingFixture() *closingFixture {
	closingRepo := newFakeClosingRepo()
	fiscalRepo := &fakeFiscalRepo{}
	ledgerRepo := &fakeLedgerRepo{}
	receivableRepo := newFakeReceivableRepo()
	commissionRepo := &fakeCommissionRepo{}
	vendorRepo := &fakeVendorRepo{}
	tx := &fakeTxManager{}
	logger := testLogger()

	receivables := NewReceivableService(receivableRepo, ledgerRepo, closingRepo, tx, logger)
	ledger := NewLedgerService(ledgerRepo, closingRepo, receivables, tx, logger)
	commissions := NewCommissionService(commissionRepo, vendorRepo, ledgerRepo, tx, logger)
	svc := NewClosingService(closingRepo, fiscalRepo, ledger, commissions, tx, logger)
	resolver := NewDivergenceService(fiscalRepo, &fakeResolutionRepo{}, ledgerRepo, closingRepo, receivables, tx, logger)

	return &closingFixture{
		svc:            svc,
		resolver:       resolver,
		closingRepo:    closingRepo,
		fiscalRepo:     fiscalRepo,
		ledgerRepo:     ledgerRepo,
		receivableRepo: receivableRepo,
		commissionRepo: commissionRepo,
		vendorRepo:     vendorRepo,
	}
}

func (f *closingFixture) openPeriod(t *testing.T, period string) {
	t.Helper()
	_, err := f.svc.CreatePeriod(context.Background(), period)
	require.NoError(t, err)
}

func reportRecord(number, value string) ReportRecordInput {
	return ReportRecordInput{
		Number:         number,
		Value:          d(value),
		Client:         "Cliente A",
		EmissionDate:   date(2025, time.March, 10),
		MovementVendor: strPtr("A"),
		XMLVendor:      "A",
		FiscalStatus:   enum.FiscalStatusNormal,
		DocumentType:   enum.DocumentTypePagaNoDia,
	}
}

func TestCreatePeriod(t *testing.T) {
	f := newClosingFixture()
	ctx := context.Background()

	t.Run("opens a new period", func(t *testing.T) {
		closing, err := f.svc.CreatePeriod(ctx, "2025-03")
		require.NoError(t, err)
		assert.Equal(t, enum.PeriodStatusAberto, closing.Status)
		assert.False(t, closing.Locked)
		assertDecimal(t, closing.TotalSales, "0")
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		for _, period := range []string{"2025-3", "2025-13", "03-2025", "abc"} {
			_, err := f.svc.CreatePeriod(ctx, period)
			require.Error(t, err, "period %s", period)
			assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := f.svc.CreatePeriod(ctx, "2025-03")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})
}

func TestGetPeriod(t *testing.T) {
	f := newClosingFixture()
	_, err := f.svc.GetPeriod(context.Background(), "2030-01")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestImportReport(t *testing.T) {
	t.Run("imports unclassified records", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")

		count, err := f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{
			reportRecord("1001", "500.00"),
			reportRecord("1002", "120.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		records, err := f.fiscalRepo.ListByPeriod(context.Background(), "2025-03")
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, record := range records {
			assert.Equal(t, enum.DivergenceStatusDivergente, record.DivergenceStatus)
			assert.Nil(t, record.DivergenceType)
		}
	})

	t.Run("re-import replaces the period", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")

		_, err := f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{
			reportRecord("1001", "500.00"),
			reportRecord("1002", "120.00"),
		})
		require.NoError(t, err)

		count, err := f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{
			reportRecord("1003", "75.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		records, _ := f.fiscalRepo.ListByPeriod(context.Background(), "2025-03")
		require.Len(t, records, 1)
		assert.Equal(t, "1003", records[0].Number)
	})

	t.Run("validation failures import nothing", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")

		blank := reportRecord("", "500.00")
		_, err := f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{blank})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

		free := reportRecord("1001", "0")
		_, err = f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{free})
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

		unknown := reportRecord("1001", "500.00")
		unknown.DocumentType = "CONSIGNADA"
		_, err = f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{unknown})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

		records, _ := f.fiscalRepo.ListByPeriod(context.Background(), "2025-03")
		assert.Empty(t, records)
	})

	t.Run("unknown period", func(t *testing.T) {
		f := newClosingFixture()
		_, err := f.svc.ImportReport(context.Background(), "2025-03", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("classifies and persists every record", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")

		clean := reportRecord("1001", "500.00")
		mismatch := reportRecord("1002", "300.00")
		mismatch.MovementVendor = strPtr("A")
		mismatch.XMLVendor = "B"
		_, err := f.svc.ImportReport(context.Background(), "2025-03", []ReportRecordInput{clean, mismatch})
		require.NoError(t, err)

		counts, err := f.svc.Analyze(context.Background(), "2025-03")
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[enum.DivergenceVendedorDivergente])

		ok, _ := f.fiscalRepo.GetByNumber(context.Background(), "2025-03", "1001")
		assert.Equal(t, enum.DivergenceStatusOK, ok.DivergenceStatus)
		require.NotNil(t, ok.FinalVendor)
		assert.Equal(t, "A", *ok.FinalVendor)

		divergent, _ := f.fiscalRepo.GetByNumber(context.Background(), "2025-03", "1002")
		assert.Equal(t, enum.DivergenceStatusDivergente, divergent.DivergenceStatus)
		require.NotNil(t, divergent.DivergenceType)
		assert.Equal(t, enum.DivergenceVendedorDivergente, *divergent.DivergenceType)
		assert.Nil(t, divergent.FinalVendor)

		closing, _ := f.closingRepo.Get(context.Background(), "2025-03")
		assert.NotNil(t, closing.AnalyzedAt)
	})

	t.Run("resolved records keep their outcome", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")

		resolved := entity.FiscalRecord{
			Number:           "1005",
			Period:           "2025-03",
			Value:            d("200.00"),
			EmissionDate:     date(2025, time.March, 5),
			MovementVendor:   strPtr("A"),
			XMLVendor:        "B",
			FiscalStatus:     enum.FiscalStatusNormal,
			DocumentType:     enum.DocumentTypePagaNoDia,
			DivergenceStatus: enum.DivergenceStatusOK,
			FinalVendor:      strPtr("B"),
		}
		require.NoError(t, f.fiscalRepo.Create(context.Background(), &resolved))

		counts, err := f.svc.Analyze(context.Background(), "2025-03")
		require.NoError(t, err)
		assert.Empty(t, counts)

		stored, _ := f.fiscalRepo.GetByNumber(context.Background(), "2025-03", "1005")
		assert.Equal(t, enum.DivergenceStatusOK, stored.DivergenceStatus)
		assert.Equal(t, "B", *stored.FinalVendor)
	})

	t.Run("locked period", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")
		_, err := f.svc.Lock(context.Background(), "2025-03")
		require.NoError(t, err)

		_, err = f.svc.Analyze(context.Background(), "2025-03")
		assert.ErrorIs(t, err, apperror.ErrPeriodLocked)
	})
}

func TestFinalize(t *testing.T) {
	actor := uuid.New()

	t.Run("requires prior analysis", func(t *testing.T) {
		f := newClosingFixture()
		f.openPeriod(t, "2025-03")
		_, err := f.svc.Finalize(context.Background(), "2025-03", actor)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("seeds the ledger and recalculates commissions", func(t *testing.T) {
		f := newClosingFixture()
		ctx := context.Background()
		f.openPeriod(t, "2025-03")

		require.NoError(t, f.vendorRepo.Create(ctx, &entity.Vendor{Code: "A", Name: "Ana", CommissionPercentage: d("10.00"), Active: true}))
		require.NoError(t, f.vendorRepo.Create(ctx, &entity.Vendor{Code: "B", Name: "Bia", CommissionPercentage: d("10.00"), Active: true}))

		cash := reportRecord("3001", "100.00")

		invoiced := reportRecord("3002", "200.00")
		invoiced.DocumentType = enum.DocumentTypeFaturada

		linkedReturn := reportRecord("3003", "50.00")
		linkedReturn.DocumentType = enum.DocumentTypeDevolucao
		linkedReturn.ReturnReference = strPtr("3002")

		noMovement := reportRecord("3004", "80.00")
		noMovement.MovementVendor = nil
		noMovement.XMLVendor = "C"

		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{cash, invoiced, linkedReturn, noMovement})
		require.NoError(t, err)
		_, err = f.svc.Analyze(ctx, "2025-03")
		require.NoError(t, err)

		// A resolved mismatch finalizes under its resolved vendor
		mismatch, _ := f.fiscalRepo.GetByNumber(ctx, "2025-03", "3001")
		mismatch.FinalVendor = strPtr("B")
		mismatch.DivergenceStatus = enum.DivergenceStatusOK
		require.NoError(t, f.fiscalRepo.Update(ctx, mismatch))

		closing, err := f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)
		assert.NotNil(t, closing.IngestedAt)
		assertDecimal(t, closing.TotalSales, "300.00")
		assertDecimal(t, closing.TotalReturns, "50.00")

		// One event per movement-bearing record; the no-movement record is skipped
		require.Len(t, f.ledgerRepo.events, 3)

		byOrigin := map[string]entity.LedgerEvent{}
		for _, event := range f.ledgerRepo.events {
			assert.True(t, event.FromReport)
			byOrigin[event.OriginID+"/"+string(event.Type)] = event
		}

		sale := byOrigin["3001/VENDA"]
		assert.Equal(t, enum.LedgerSubtypeAVista, sale.Subtype)
		assert.Equal(t, "B", sale.Vendor)
		assertDecimal(t, sale.Value, "100.00")

		seed := byOrigin["3002/VENDA"]
		assert.Equal(t, enum.LedgerSubtypeFaturada, seed.Subtype)
		assertDecimal(t, seed.Value, "200.00")
		require.NotNil(t, seed.RealDate)
		assert.Equal(t, date(2025, time.March, 10), *seed.RealDate)

		// The return lands on the referenced invoice
		ret := byOrigin["3002/DEVOLUCAO"]
		assert.Equal(t, enum.LedgerSubtypeOutros, ret.Subtype)
		assertDecimal(t, ret.Value, "-50.00")

		// Projection: the invoiced sale became a receivable, reduced by the return
		receivable, err := f.receivableRepo.GetByID(ctx, "3002")
		require.NoError(t, err)
		require.NotNil(t, receivable)
		assertDecimal(t, receivable.OpenBalance, "150.00")
		assert.Equal(t, enum.ReceivableStatusParcial, receivable.Status)

		// Commissions follow the ledger snapshot
		commissions, err := f.commissionRepo.ListByPeriod(ctx, "2025-03")
		require.NoError(t, err)
		require.Len(t, commissions, 2)
		assert.Equal(t, "A", commissions[0].Vendor)
		assertDecimal(t, commissions[0].GrossSales, "200.00")
		assertDecimal(t, commissions[0].Returns, "50.00")
		assertDecimal(t, commissions[0].Value, "15.00")
		assert.Equal(t, "B", commissions[1].Vendor)
		assertDecimal(t, commissions[1].Value, "10.00")
	})

	t.Run("re-finalizing never duplicates report events", func(t *testing.T) {
		f := newClosingFixture()
		ctx := context.Background()
		f.openPeriod(t, "2025-03")

		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{reportRecord("3001", "100.00")})
		require.NoError(t, err)
		_, err = f.svc.Analyze(ctx, "2025-03")
		require.NoError(t, err)

		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)
		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)

		assert.Len(t, f.ledgerRepo.events, 1)
	})

	t.Run("estorno resolutions finalize under the movement vendor", func(t *testing.T) {
		f := newClosingFixture()
		ctx := context.Background()
		f.openPeriod(t, "2025-03")

		canceled := reportRecord("3006", "70.00")
		canceled.FiscalStatus = enum.FiscalStatusCancelada
		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{canceled})
		require.NoError(t, err)
		_, err = f.svc.Analyze(ctx, "2025-03")
		require.NoError(t, err)

		record, _ := f.fiscalRepo.GetByNumber(ctx, "2025-03", "3006")
		record.FinalVendor = strPtr(entity.VendorEstornado)
		record.DivergenceStatus = enum.DivergenceStatusOK
		require.NoError(t, f.fiscalRepo.Update(ctx, record))

		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)

		require.Len(t, f.ledgerRepo.events, 1)
		assert.Equal(t, "A", f.ledgerRepo.events[0].Vendor)
	})

	t.Run("transfer resolutions finalize on the debit side of their legs", func(t *testing.T) {
		f := newClosingFixture()
		ctx := context.Background()
		f.openPeriod(t, "2025-03")

		require.NoError(t, f.vendorRepo.Create(ctx, &entity.Vendor{Code: "C", Name: "Caio", CommissionPercentage: d("10.00"), Active: true}))
		require.NoError(t, f.vendorRepo.Create(ctx, &entity.Vendor{Code: "E", Name: "Eva", CommissionPercentage: d("10.00"), Active: true}))

		mismatch := reportRecord("3005", "500.00")
		mismatch.MovementVendor = strPtr("E")
		mismatch.XMLVendor = "C"
		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{mismatch})
		require.NoError(t, err)
		_, err = f.svc.Analyze(ctx, "2025-03")
		require.NoError(t, err)

		_, err = f.resolver.Resolve(ctx, &ResolveInput{
			Period: "2025-03",
			Number: "3005",
			Action: enum.ActionUseXML,
			Actor:  actor,
		})
		require.NoError(t, err)

		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)

		// The legs carry the vendor shift; the report event keeps debiting E
		require.Len(t, f.ledgerRepo.events, 3)
		report := f.ledgerRepo.events[2]
		assert.True(t, report.FromReport)
		assert.Equal(t, "E", report.Vendor)
		assertDecimal(t, report.Value, "500.00")

		totals, err := f.ledgerRepo.VendorTotals(ctx, "2025-03")
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "C", totals[0].Vendor)
		assertDecimal(t, totals[0].Total, "500.00")
		assert.Equal(t, "E", totals[1].Vendor)
		assertDecimal(t, totals[1].Total, "0")

		// Commission follows the net attribution, not the raw gross
		commissions, err := f.commissionRepo.ListByPeriod(ctx, "2025-03")
		require.NoError(t, err)
		require.Len(t, commissions, 2)
		assert.Equal(t, "C", commissions[0].Vendor)
		assertDecimal(t, commissions[0].Value, "50.00")
		assert.Equal(t, "E", commissions[1].Vendor)
		assertDecimal(t, commissions[1].Base, "0")
		assertDecimal(t, commissions[1].Value, "0")

		// Re-finalizing after the resolution leaves the totals unchanged
		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)
		totals, err = f.ledgerRepo.VendorTotals(ctx, "2025-03")
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assertDecimal(t, totals[0].Total, "500.00")
		assertDecimal(t, totals[1].Total, "0")
	})

	t.Run("loss resolutions land the whole return on the store once", func(t *testing.T) {
		f := newClosingFixture()
		ctx := context.Background()
		f.openPeriod(t, "2025-03")

		orphan := reportRecord("3007", "50.00")
		orphan.DocumentType = enum.DocumentTypeDevolucao
		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{orphan})
		require.NoError(t, err)
		_, err = f.svc.Analyze(ctx, "2025-03")
		require.NoError(t, err)

		_, err = f.resolver.Resolve(ctx, &ResolveInput{
			Period: "2025-03",
			Number: "3007",
			Action: enum.ActionLoss,
			Actor:  actor,
		})
		require.NoError(t, err)

		_, err = f.svc.Finalize(ctx, "2025-03", actor)
		require.NoError(t, err)

		require.Len(t, f.ledgerRepo.events, 3)
		report := f.ledgerRepo.events[2]
		assert.True(t, report.FromReport)
		assert.Equal(t, entity.VendorIndefinido, report.Vendor)
		assertDecimal(t, report.Value, "-50.00")

		totals, err := f.ledgerRepo.VendorTotals(ctx, "2025-03")
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, entity.VendorIndefinido, totals[0].Vendor)
		assertDecimal(t, totals[0].Total, "0")
		assert.Equal(t, entity.VendorLoja, totals[1].Vendor)
		assertDecimal(t, totals[1].Total, "-50.00")
	})
}

func TestLock(t *testing.T) {
	f := newClosingFixture()
	ctx := context.Background()
	f.openPeriod(t, "2025-03")

	closing, err := f.svc.Lock(ctx, "2025-03")
	require.NoError(t, err)
	assert.True(t, closing.Locked)
	assert.NotNil(t, closing.LockedAt)
	assert.Equal(t, enum.PeriodStatusFechado, closing.Status)

	t.Run("locking is one-way", func(t *testing.T) {
		_, err := f.svc.Lock(ctx, "2025-03")
		assert.ErrorIs(t, err, apperror.ErrPeriodLocked)
	})

	t.Run("locked periods refuse imports", func(t *testing.T) {
		_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{reportRecord("1001", "10.00")})
		assert.ErrorIs(t, err, apperror.ErrPeriodLocked)
	})
}

func TestSummary(t *testing.T) {
	f := newClosingFixture()
	ctx := context.Background()
	f.openPeriod(t, "2025-03")

	mismatch := reportRecord("1002", "300.00")
	mismatch.MovementVendor = strPtr("B")
	_, err := f.svc.ImportReport(ctx, "2025-03", []ReportRecordInput{reportRecord("1001", "100.00"), mismatch})
	require.NoError(t, err)
	_, err = f.svc.Analyze(ctx, "2025-03")
	require.NoError(t, err)
	_, err = f.svc.Finalize(ctx, "2025-03", uuid.New())
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", summary.Period)
	assert.False(t, summary.Locked)
	assertDecimal(t, summary.TotalSales, "400.00")
	assert.Equal(t, int64(1), summary.DivergenceCount[enum.DivergenceVendedorDivergente])
	require.Len(t, summary.VendorTotals, 2)
}
