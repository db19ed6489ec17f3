package usecase

import (
	"context"
	"time"

	"postjourney/internal/data/entity"
	"postjourney/internal/data/repository"
	"postjourney/pkg/apperror"
	"postjourney/pkg/database"
	"postjourney/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory fakes. Find methods hand out copies so the version checks in the
// CAS updates behave like the real conditional SQL.

const testAdminID = "11111111-1111-4111-8111-111111111111"

type fakeDB struct{}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return &fakeTx{}, nil
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }

func (f *fakeDB) Close() {}

type fakeTx struct {
	pgx.Tx
}

func (t *fakeTx) Commit(ctx context.Context) error   { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { return nil }

// ---------- listings ----------

type fakeListingRepo struct {
	listings map[uuid.UUID]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*entity.Listing)}
}

func (f *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	stored := *listing
	f.listings[listing.ID] = &stored
	return nil
}

func (f *fakeListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	stored, ok := f.listings[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeListingRepo) FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Listing, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeListingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range f.listings {
		if l.ProviderID == providerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range f.listings {
		if l.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeListingRepo) FindListed(ctx context.Context, search string, limit, offset int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range f.listings {
		if l.IsListed && l.IsAvailable {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) CountListed(ctx context.Context, search string) (int64, error) {
	var count int64
	for _, l := range f.listings {
		if l.IsListed && l.IsAvailable {
			count++
		}
	}
	return count, nil
}

func (f *fakeListingRepo) AdjustStock(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	stored, ok := f.listings[id]
	if !ok {
		return apperror.NotFound("listing", id.String())
	}
	if stored.Stock+delta < 0 {
		return apperror.InsufficientStock(id.String(), -delta)
	}
	stored.Stock += delta
	stored.IsAvailable = entity.StockAvailable(stored.Stock)
	stored.Version++
	return nil
}

func (f *fakeListingRepo) UpdateListedState(ctx context.Context, id uuid.UUID, version int64, listed bool) error {
	stored, ok := f.listings[id]
	if !ok || stored.Version != version {
		return apperror.Conflict("listing %s was modified concurrently", id.String())
	}
	stored.IsListed = listed
	stored.Version++
	return nil
}

func (f *fakeListingRepo) MarkListingFeePaid(ctx context.Context, q database.Querier, id uuid.UUID, version int64, amount int64) error {
	stored, ok := f.listings[id]
	if !ok || stored.Version != version || stored.ListingFeePaid {
		return apperror.Conflict("listing %s was modified concurrently", id.String())
	}
	stored.ListingFeePaid = true
	stored.ListingFeeAmount = amount
	stored.Version++
	return nil
}

func (f *fakeListingRepo) UpdateReviewAggregates(ctx context.Context, q database.Querier, id uuid.UUID, average float64, total int) error {
	stored, ok := f.listings[id]
	if !ok {
		return apperror.NotFound("listing", id.String())
	}
	stored.AverageRating = average
	stored.TotalReviews = total
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	reviews []*entity.ListingReview
}

func (f *fakeReviewRepo) Create(ctx context.Context, q database.Querier, review *entity.ListingReview) error {
	stored := *review
	f.reviews = append(f.reviews, &stored)
	return nil
}

func (f *fakeReviewRepo) FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.ListingReview, error) {
	var out []*entity.ListingReview
	for _, r := range f.reviews {
		if r.ListingID == listingID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range f.reviews {
		if r.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) RatingsByListingID(ctx context.Context, q database.Querier, listingID uuid.UUID) ([]int, error) {
	var ratings []int
	for _, r := range f.reviews {
		if r.ListingID == listingID {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings, nil
}

// ---------- bookings ----------

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeBookingRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) UpdateCAS(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	stored, ok := f.bookings[booking.ID]
	if !ok || stored.Version != booking.Version {
		return apperror.Conflict("booking %s was modified concurrently", booking.ID.String())
	}
	stored.Status = booking.Status
	stored.PaymentStatus = booking.PaymentStatus
	stored.CancelledBy = booking.CancelledBy
	stored.CancellationReason = booking.CancellationReason
	stored.HasReview = booking.HasReview
	stored.Version++
	booking.Version++
	return nil
}

// ---------- consultations ----------

type fakeConsultationRepo struct {
	consultations map[uuid.UUID]*entity.Consultation
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{consultations: make(map[uuid.UUID]*entity.Consultation)}
}

func (f *fakeConsultationRepo) Create(ctx context.Context, q database.Querier, consultation *entity.Consultation) error {
	stored := *consultation
	f.consultations[consultation.ID] = &stored
	return nil
}

func (f *fakeConsultationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	stored, ok := f.consultations[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeConsultationRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Consultation, error) {
	var out []*entity.Consultation
	for _, c := range f.consultations {
		if c.PatientID == patientID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) CountByPatientID(ctx context.Context, patientID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range f.consultations {
		if c.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeConsultationRepo) UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.ConsultationStatus) error {
	stored, ok := f.consultations[id]
	if !ok || stored.Version != version {
		return apperror.Conflict("consultation %s was modified concurrently", id.String())
	}
	stored.Status = status
	stored.Version++
	return nil
}

// ---------- doctors ----------

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*entity.Doctor)}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	stored := *doctor
	f.doctors[doctor.ID] = &stored
	return nil
}

func (f *fakeDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	stored, ok := f.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeDoctorRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Doctor, error) {
	var out []*entity.Doctor
	for _, d := range f.doctors {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeDoctorRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.doctors)), nil
}

// ---------- transactions ----------

type fakeTransactionRepo struct {
	records map[uuid.UUID]*entity.TransactionRecord

	// failUpdateStatus, when set, is returned by UpdateStatusCAS to
	// simulate a write failure mid-transaction.
	failUpdateStatus error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{records: make(map[uuid.UUID]*entity.TransactionRecord)}
}

func (f *fakeTransactionRepo) Create(ctx context.Context, q database.Querier, record *entity.TransactionRecord) error {
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRecord, error) {
	stored, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeTransactionRepo) FindByReference(ctx context.Context, referenceID uuid.UUID, referenceType entity.ReferenceType) ([]*entity.TransactionRecord, error) {
	var out []*entity.TransactionRecord
	for _, r := range f.records {
		if r.ReferenceID == referenceID && r.ReferenceType == referenceType {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.TransactionRecord, error) {
	var out []*entity.TransactionRecord
	for _, r := range f.records {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTransactionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeTransactionRepo) UpdateStatusCAS(ctx context.Context, q database.Querier, id uuid.UUID, version int64, status entity.TransactionStatus) error {
	if f.failUpdateStatus != nil {
		return f.failUpdateStatus
	}
	stored, ok := f.records[id]
	if !ok || stored.Version != version {
		return apperror.Conflict("transaction %s was modified concurrently", id.String())
	}
	stored.Status = status
	stored.Version++
	return nil
}

// ---------- verifications ----------

type fakeVerificationRepo struct {
	verifications map[uuid.UUID]*entity.ProviderVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{verifications: make(map[uuid.UUID]*entity.ProviderVerification)}
}

func (f *fakeVerificationRepo) Create(ctx context.Context, verification *entity.ProviderVerification) error {
	stored := *verification
	f.verifications[verification.ProviderID] = &stored
	return nil
}

func (f *fakeVerificationRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entity.ProviderVerification, error) {
	stored, ok := f.verifications[providerID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeVerificationRepo) FindPending(ctx context.Context, limit, offset int) ([]*entity.ProviderVerification, error) {
	var out []*entity.ProviderVerification
	for _, v := range f.verifications {
		if v.Status == entity.VerificationPending {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeVerificationRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	for _, v := range f.verifications {
		if v.Status == entity.VerificationPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeVerificationRepo) UpdateCAS(ctx context.Context, verification *entity.ProviderVerification) error {
	stored, ok := f.verifications[verification.ProviderID]
	if !ok || stored.Version != verification.Version {
		return apperror.Conflict("verification for provider %s was modified concurrently", verification.ProviderID.String())
	}
	updated := *verification
	updated.Version++
	f.verifications[verification.ProviderID] = &updated
	verification.Version++
	return nil
}

// ---------- environment ----------

type testEnv struct {
	listings      *fakeListingRepo
	reviews       *fakeReviewRepo
	bookings      *fakeBookingRepo
	consultations *fakeConsultationRepo
	doctors       *fakeDoctorRepo
	transactions  *fakeTransactionRepo
	verifications *fakeVerificationRepo

	catalog      CatalogService
	booking      BookingService
	consultation ConsultationService
	ledger       LedgerService
	verification VerificationService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		listings:      newFakeListingRepo(),
		reviews:       &fakeReviewRepo{},
		bookings:      newFakeBookingRepo(),
		consultations: newFakeConsultationRepo(),
		doctors:       newFakeDoctorRepo(),
		transactions:  newFakeTransactionRepo(),
		verifications: newFakeVerificationRepo(),
	}

	repo := &repository.Repository{
		Listing:      env.listings,
		Review:       env.reviews,
		Booking:      env.bookings,
		Consultation: env.consultations,
		Doctor:       env.doctors,
		Transaction:  env.transactions,
		Verification: env.verifications,
	}

	config := &utils.Config{
		Commission: utils.CommissionConfig{
			RateBps:          2000,
			ListingFeeAmount: 50000,
			AdminAccountID:   testAdminID,
		},
	}

	db := &fakeDB{}
	log := zap.NewNop()

	env.ledger = NewLedgerService(db, repo, log)
	env.verification = NewVerificationService(repo, log)
	env.catalog = NewCatalogService(db, repo, env.ledger, config, log)
	env.booking = NewBookingService(db, repo, env.catalog, env.ledger, config, log)
	env.consultation = NewConsultationService(db, repo, env.ledger, config, log)

	return env
}

func (e *testEnv) seedListing(providerID uuid.UUID, pricePerDay int64, stock int, listed bool) *entity.Listing {
	now := time.Now()
	listing := &entity.Listing{
		BaseVersioned: entity.BaseVersioned{
			Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Version: 1,
		},
		ProviderID:  providerID,
		Name:        "Oxygen Concentrator",
		Description: "5L portable concentrator",
		PricePerDay: pricePerDay,
		Stock:       stock,
		Category:    entity.CategoryRespiratory,
		IsAvailable: entity.StockAvailable(stock),
		IsListed:    listed,
	}
	e.listings.listings[listing.ID] = listing
	return listing
}

func (e *testEnv) seedDoctor(fee int64) *entity.Doctor {
	now := time.Now()
	doctor := &entity.Doctor{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:           "Dr. Asha Rao",
		Specialization: "Pulmonology",
		Email:          "asha.rao@example.com",
		Phone:          "9000000000",
		Fee:            fee,
	}
	e.doctors.doctors[doctor.ID] = doctor
	return doctor
}
