package assignments

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/printdeskhq/printdesk-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memRepo struct {
	quotes map[uuid.UUID]*models.Quote
	items  map[uuid.UUID]*models.QuoteLineItem
	jobs   map[uuid.UUID]*models.SupplierJob
}

func newMemRepo() *memRepo {
	return &memRepo{
		quotes: map[uuid.UUID]*models.Quote{},
		items:  map[uuid.UUID]*models.QuoteLineItem{},
		jobs:   map[uuid.UUID]*models.SupplierJob{},
	}
}

func (m *memRepo) WithTx(tx *gorm.DB) Repository { return m }

func (m *memRepo) FindQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	q, ok := m.quotes[quoteID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *memRepo) FindLineItem(ctx context.Context, id uuid.UUID) (*models.QuoteLineItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memRepo) FindLineItemsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLineItem, error) {
	var out []models.QuoteLineItem
	for _, item := range m.items {
		if item.QuoteID == quoteID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memRepo) CreateJob(ctx context.Context, job *models.SupplierJob) (*models.SupplierJob, error) {
	job.ID = uuid.New()
	copied := *job
	m.jobs[job.ID] = &copied
	return job, nil
}

func (m *memRepo) FindJob(ctx context.Context, jobID uuid.UUID) (*models.SupplierJob, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *memRepo) FindActiveJobsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.SupplierJob, error) {
	var out []models.SupplierJob
	for _, job := range m.jobs {
		if job.QuoteID == quoteID && job.Status != enums.JobStatusCancelled {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *memRepo) StampLineItemAssignment(ctx context.Context, lineItemID, supplierID uuid.UUID, cost decimal.Decimal, deliveryDays int) error {
	item, ok := m.items[lineItemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sid := supplierID
	c := cost
	d := deliveryDays
	item.SupplierID = &sid
	item.SupplierCost = &c
	item.DeliveryDays = &d
	return nil
}

func (m *memRepo) ClearLineItemAssignment(ctx context.Context, lineItemID uuid.UUID) error {
	item, ok := m.items[lineItemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.SupplierID = nil
	item.SupplierCost = nil
	item.DeliveryDays = nil
	return nil
}

func (m *memRepo) UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			job.Status = value.(enums.JobStatus)
		case "is_accepted":
			job.IsAccepted = value.(bool)
		case "promised_delivery_days":
			job.PromisedDeliveryDays = value.(int)
		case "actual_delivery_days":
			v := value.(int)
			job.ActualDeliveryDays = &v
		case "courier_confirmed":
			job.CourierConfirmed = value.(bool)
		case "rating":
			v := value.(int)
			job.Rating = &v
		case "cancel_reason":
			v := value.(string)
			job.CancelReason = &v
		case "cancelled_at":
			v := value.(time.Time)
			job.CancelledAt = &v
		case "ready_at":
			v := value.(time.Time)
			job.ReadyAt = &v
		case "delivered_at":
			v := value.(time.Time)
			job.DeliveredAt = &v
		}
	}
	return nil
}

func (m *memRepo) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status enums.QuoteStatus) error {
	quote, ok := m.quotes[quoteID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	quote.Status = status
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func asgTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, passthroughTx{}, asgTestLogger(), metrics.NewEngineMetrics(nil))
	require.NoError(t, err)
	return svc
}

func seedQuote(repo *memRepo, status enums.QuoteStatus, itemCount int) (uuid.UUID, []uuid.UUID) {
	quoteID := uuid.New()
	repo.quotes[quoteID] = &models.Quote{ID: quoteID, QuoteNumber: 1, Status: status}

	itemIDs := make([]uuid.UUID, itemCount)
	for i := range itemIDs {
		itemIDs[i] = uuid.New()
		repo.items[itemIDs[i]] = &models.QuoteLineItem{
			ID:              itemIDs[i],
			QuoteID:         quoteID,
			PriceableUnitID: uuid.New(),
			Quantity:        10,
		}
	}
	return quoteID, itemIDs
}

func assignItems(itemIDs []uuid.UUID, price string, days int) []AssignmentItem {
	out := make([]AssignmentItem, len(itemIDs))
	for i, id := range itemIDs {
		p, _ := decimal.NewFromString(price)
		out[i] = AssignmentItem{LineItemID: id, UnitID: uuid.New(), PricePerUnit: p, DeliveryDays: days}
	}
	return out
}

func requireStateConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestAssignSupplierToCategory_AllItemsTransitionsQuote(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)
	supplier := uuid.New()

	svc := newTestService(t, repo)
	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID:    quoteID,
		SupplierID: supplier,
		Items:      assignItems(itemIDs, "12.50", 3),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.JobIDs, 2)
	assert.Equal(t, enums.QuoteStatusInProduction, result.QuoteStatus)
	assert.Equal(t, enums.QuoteStatusInProduction, repo.quotes[quoteID].Status)

	for _, id := range itemIDs {
		item := repo.items[id]
		require.NotNil(t, item.SupplierID)
		assert.Equal(t, supplier, *item.SupplierID)
		require.NotNil(t, item.SupplierCost)
		assert.Equal(t, "12.5", item.SupplierCost.String())
		require.NotNil(t, item.DeliveryDays)
		assert.Equal(t, 3, *item.DeliveryDays)
	}
	for _, jobID := range result.JobIDs {
		job := repo.jobs[jobID]
		assert.Equal(t, enums.JobStatusPending, job.Status)
		assert.Equal(t, 3, job.PromisedDeliveryDays)
		assert.False(t, job.IsAccepted)
	}
}

func TestAssignSupplierToCategory_PartialAssignmentKeepsStatus(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)

	svc := newTestService(t, repo)
	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID:    quoteID,
		SupplierID: uuid.New(),
		Items:      assignItems(itemIDs[:1], "5.00", 2),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusApproved, result.QuoteStatus, "quote only enters production once every item is assigned")
	assert.Equal(t, enums.QuoteStatusApproved, repo.quotes[quoteID].Status)
}

func TestAssignSupplierToCategory_SecondCategoryCompletesQuote(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)
	svc := newTestService(t, repo)

	_, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs[:1], "5.00", 2),
	})
	require.NoError(t, err)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs[1:], "7.00", 4),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusInProduction, result.QuoteStatus, "status check re-reads item state, not just this batch")
}

func TestAssignSupplierToCategory_ForeignLineItemRejected(t *testing.T) {
	repo := newMemRepo()
	quoteID, _ := seedQuote(repo, enums.QuoteStatusApproved, 1)
	_, otherItems := seedQuote(repo, enums.QuoteStatusApproved, 1)

	svc := newTestService(t, repo)
	_, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID:    quoteID,
		SupplierID: uuid.New(),
		Items:      assignItems(otherItems, "5.00", 2),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestAssignSupplierToCategory_CancelledQuoteRejected(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusCancelled, 1)

	svc := newTestService(t, repo)
	_, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID:    quoteID,
		SupplierID: uuid.New(),
		Items:      assignItems(itemIDs, "5.00", 2),
	})
	requireStateConflict(t, err)
}

func TestAssignSupplierToCategory_Validation(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	_, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{})
	require.Error(t, err)

	_, err = svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID:    uuid.New(),
		SupplierID: uuid.New(),
		Items:      []AssignmentItem{{LineItemID: uuid.New(), DeliveryDays: 0}},
	})
	require.Error(t, err)
}

func TestCancelJob_RevertsQuoteOnLastAssignment(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 1)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)
	require.Equal(t, enums.QuoteStatusInProduction, repo.quotes[quoteID].Status)

	reason := "customer changed spec"
	cancel, err := svc.CancelJob(context.Background(), result.JobIDs[0], &reason)
	require.NoError(t, err)
	assert.True(t, cancel.Success)
	assert.True(t, cancel.QuoteReverted)
	assert.Equal(t, enums.QuoteStatusApproved, repo.quotes[quoteID].Status)

	job := repo.jobs[result.JobIDs[0]]
	assert.Equal(t, enums.JobStatusCancelled, job.Status)
	require.NotNil(t, job.CancelReason)
	assert.Equal(t, reason, *job.CancelReason)
	assert.NotNil(t, job.CancelledAt)

	item := repo.items[itemIDs[0]]
	assert.Nil(t, item.SupplierID, "cancellation clears the line item stamp")
	assert.Nil(t, item.SupplierCost)
	assert.Nil(t, item.DeliveryDays)
}

func TestCancelJob_AcceptedJobNeverMutates(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 1)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)
	repo.jobs[result.JobIDs[0]].IsAccepted = true

	_, err = svc.CancelJob(context.Background(), result.JobIDs[0], nil)
	requireStateConflict(t, err)

	assert.Equal(t, enums.JobStatusPending, repo.jobs[result.JobIDs[0]].Status)
	assert.NotNil(t, repo.items[itemIDs[0]].SupplierID, "failed cancel leaves state untouched")
	assert.Equal(t, enums.QuoteStatusInProduction, repo.quotes[quoteID].Status)
}

func TestCancelJob_AlreadyCancelled(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 1)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)

	_, err = svc.CancelJob(context.Background(), result.JobIDs[0], nil)
	require.NoError(t, err)

	_, err = svc.CancelJob(context.Background(), result.JobIDs[0], nil)
	requireStateConflict(t, err)
}

func TestCancelJob_NotFound(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	_, err := svc.CancelJob(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCancelJob_PartialCancelKeepsOtherAssignments(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)

	cancel, err := svc.CancelJob(context.Background(), result.JobIDs[0], nil)
	require.NoError(t, err)
	assert.True(t, cancel.QuoteReverted, "an in_production quote with an unassigned item drops back to approved")
	assert.Equal(t, enums.QuoteStatusApproved, repo.quotes[quoteID].Status)
	assert.NotNil(t, repo.items[itemIDs[1]].SupplierID, "the other assignment survives")
}

func TestCancelJobsByQuote(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)
	svc := newTestService(t, repo)

	_, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)

	reason := "quote rework"
	result, err := svc.CancelJobsByQuote(context.Background(), quoteID, &reason)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.CancelledJobs)
	assert.True(t, result.QuoteReverted)
	assert.Equal(t, enums.QuoteStatusApproved, repo.quotes[quoteID].Status)

	for _, id := range itemIDs {
		assert.Nil(t, repo.items[id].SupplierID)
	}
	for _, job := range repo.jobs {
		assert.Equal(t, enums.JobStatusCancelled, job.Status)
	}
}

func TestCancelJobsByQuote_AcceptedJobRejectsWholeBatch(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 2)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)
	repo.jobs[result.JobIDs[1]].IsAccepted = true

	_, err = svc.CancelJobsByQuote(context.Background(), quoteID, nil)
	requireStateConflict(t, err)

	assert.Equal(t, enums.JobStatusPending, repo.jobs[result.JobIDs[0]].Status, "no job is skipped-and-cancelled; the whole batch is rejected")
	assert.Equal(t, enums.QuoteStatusInProduction, repo.quotes[quoteID].Status)
}

func TestCancelJobsByQuote_NoActiveJobs(t *testing.T) {
	repo := newMemRepo()
	quoteID, _ := seedQuote(repo, enums.QuoteStatusApproved, 1)
	svc := newTestService(t, repo)

	_, err := svc.CancelJobsByQuote(context.Background(), quoteID, nil)
	requireStateConflict(t, err)
}

func TestCorrectJob(t *testing.T) {
	repo := newMemRepo()
	quoteID, itemIDs := seedQuote(repo, enums.QuoteStatusApproved, 1)
	svc := newTestService(t, repo)

	result, err := svc.AssignSupplierToCategory(context.Background(), AssignInput{
		QuoteID: quoteID, SupplierID: uuid.New(), Items: assignItems(itemIDs, "5.00", 2),
	})
	require.NoError(t, err)
	jobID := result.JobIDs[0]

	accepted := true
	rating := 4
	actual := 2
	delivered := enums.JobStatusDelivered
	err = svc.CorrectJob(context.Background(), jobID, JobCorrectionInput{
		Status:             &delivered,
		IsAccepted:         &accepted,
		ActualDeliveryDays: &actual,
		Rating:             &rating,
	})
	require.NoError(t, err)

	job := repo.jobs[jobID]
	assert.Equal(t, enums.JobStatusDelivered, job.Status)
	assert.True(t, job.IsAccepted)
	require.NotNil(t, job.ActualDeliveryDays)
	assert.Equal(t, 2, *job.ActualDeliveryDays)
	require.NotNil(t, job.Rating)
	assert.Equal(t, 4, *job.Rating)
	assert.NotNil(t, job.DeliveredAt, "delivery milestone is stamped on first transition")
}

func TestCorrectJob_InvalidRating(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	rating := 6
	err := svc.CorrectJob(context.Background(), uuid.New(), JobCorrectionInput{Rating: &rating})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
