package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgdb "github.com/printdeskhq/printdesk-backend/pkg/db"
	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/printdeskhq/printdesk-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives supplier assignment and the quote status transitions it
// implies. All multi-item writes are atomic: the whole batch commits or
// rolls back.
type Service interface {
	AssignSupplierToCategory(ctx context.Context, input AssignInput) (*AssignResult, error)
	CancelJob(ctx context.Context, jobID uuid.UUID, reason *string) (*CancelResult, error)
	CancelJobsByQuote(ctx context.Context, quoteID uuid.UUID, reason *string) (*CancelResult, error)
	CorrectJob(ctx context.Context, jobID uuid.UUID, input JobCorrectionInput) error
}

type service struct {
	repo   Repository
	tx     txRunner
	logg   *logger.Logger
	engine *metrics.EngineMetrics
}

// NewService builds the assignment service.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, engine *metrics.EngineMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg, engine: engine}, nil
}

func (s *service) AssignSupplierToCategory(ctx context.Context, input AssignInput) (*AssignResult, error) {
	if input.QuoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}
	for _, item := range input.Items {
		if item.LineItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id required")
		}
		if item.DeliveryDays <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery days must be positive")
		}
		if item.PricePerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per unit must not be negative")
		}
	}

	ctx = s.logg.WithQuoteID(ctx, input.QuoteID.String())
	ctx = s.logg.WithSupplierID(ctx, input.SupplierID.String())

	result := &AssignResult{JobIDs: make([]uuid.UUID, 0, len(input.Items))}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.FindQuote(ctx, input.QuoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
		}
		if quote.Status == enums.QuoteStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot assign suppliers on a cancelled quote")
		}

		for _, item := range input.Items {
			lineItem, err := repo.FindLineItem(ctx, item.LineItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
			}
			if lineItem.QuoteID != input.QuoteID {
				return pkgerrors.New(pkgerrors.CodeConflict, "line item does not belong to quote")
			}

			job, err := repo.CreateJob(ctx, &models.SupplierJob{
				QuoteID:              input.QuoteID,
				QuoteLineItemID:      item.LineItemID,
				SupplierID:           input.SupplierID,
				Status:               enums.JobStatusPending,
				PromisedDeliveryDays: item.DeliveryDays,
			})
			if err != nil {
				if pkgdb.IsUniqueViolation(err, "idx_supplier_jobs_line_item_active") {
					return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "line item already has an active job")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier job")
			}
			if err := repo.StampLineItemAssignment(ctx, item.LineItemID, input.SupplierID, item.PricePerUnit, item.DeliveryDays); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp line item")
			}
			result.JobIDs = append(result.JobIDs, job.ID)
		}

		// Status derivation re-reads every item inside this transaction:
		// assignments may land across multiple category calls, and earlier
		// in-request values can be stale.
		status, err := s.recomputeQuoteStatus(ctx, repo, input.QuoteID, quote.Status)
		if err != nil {
			return err
		}
		result.QuoteStatus = status
		return nil
	})
	if err != nil {
		s.engine.IncAssignments("error", len(input.Items))
		return nil, err
	}

	s.engine.IncAssignments("success", len(result.JobIDs))
	result.Success = true
	s.logg.Info(ctx, "supplier assigned to category items")
	return result, nil
}

func (s *service) CancelJob(ctx context.Context, jobID uuid.UUID, reason *string) (*CancelResult, error) {
	if jobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}

	result := &CancelResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		job, err := repo.FindJob(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
		}
		if job.IsAccepted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot cancel job after supplier acceptance")
		}
		if job.Status == enums.JobStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job is already cancelled")
		}

		if err := s.cancelOne(ctx, repo, job.ID, job.QuoteLineItemID, reason); err != nil {
			return err
		}

		reverted, err := s.revertQuoteIfNeeded(ctx, repo, job.QuoteID)
		if err != nil {
			return err
		}
		result.CancelledJobs = 1
		result.QuoteReverted = reverted
		return nil
	})
	if err != nil {
		s.engine.IncCancellations("error")
		return nil, err
	}

	s.engine.IncCancellations("success")
	result.Success = true
	return result, nil
}

func (s *service) CancelJobsByQuote(ctx context.Context, quoteID uuid.UUID, reason *string) (*CancelResult, error) {
	if quoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}

	ctx = s.logg.WithQuoteID(ctx, quoteID.String())

	result := &CancelResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		jobs, err := repo.FindActiveJobsByQuote(ctx, quoteID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote jobs")
		}
		if len(jobs) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "no active jobs for quote")
		}
		// all-or-nothing: one accepted job rejects the whole batch
		for _, job := range jobs {
			if job.IsAccepted {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot cancel jobs: at least one job was already accepted by its supplier")
			}
		}

		for _, job := range jobs {
			if err := s.cancelOne(ctx, repo, job.ID, job.QuoteLineItemID, reason); err != nil {
				return err
			}
		}

		reverted, err := s.revertQuoteIfNeeded(ctx, repo, quoteID)
		if err != nil {
			return err
		}
		result.CancelledJobs = len(jobs)
		result.QuoteReverted = reverted
		return nil
	})
	if err != nil {
		s.engine.IncCancellations("error")
		return nil, err
	}

	s.engine.IncCancellations("success")
	result.Success = true
	s.logg.Info(ctx, "cancelled all active jobs for quote")
	return result, nil
}

func (s *service) CorrectJob(ctx context.Context, jobID uuid.UUID, input JobCorrectionInput) error {
	if jobID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.PromisedDeliveryDays != nil && *input.PromisedDeliveryDays <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "promised delivery days must be positive")
	}
	if input.ActualDeliveryDays != nil && *input.ActualDeliveryDays < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "actual delivery days must not be negative")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid job status")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		job, err := repo.FindJob(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
		}

		updates := map[string]any{}
		if input.Status != nil && *input.Status != job.Status {
			updates["status"] = *input.Status
			now := time.Now().UTC()
			switch *input.Status {
			case enums.JobStatusReady:
				if job.ReadyAt == nil {
					updates["ready_at"] = now
				}
			case enums.JobStatusDelivered:
				if job.DeliveredAt == nil {
					updates["delivered_at"] = now
				}
			}
		}
		if input.IsAccepted != nil {
			updates["is_accepted"] = *input.IsAccepted
		}
		if input.PromisedDeliveryDays != nil {
			updates["promised_delivery_days"] = *input.PromisedDeliveryDays
		}
		if input.ActualDeliveryDays != nil {
			updates["actual_delivery_days"] = *input.ActualDeliveryDays
		}
		if input.CourierConfirmed != nil {
			updates["courier_confirmed"] = *input.CourierConfirmed
		}
		if input.Rating != nil {
			updates["rating"] = *input.Rating
		}
		if len(updates) == 0 {
			return nil
		}

		if err := repo.UpdateJob(ctx, jobID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job")
		}
		return nil
	})
}

func (s *service) cancelOne(ctx context.Context, repo Repository, jobID, lineItemID uuid.UUID, reason *string) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":       enums.JobStatusCancelled,
		"cancelled_at": now,
	}
	if reason != nil && *reason != "" {
		updates["cancel_reason"] = *reason
	}
	if err := repo.UpdateJob(ctx, jobID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel job")
	}
	if err := repo.ClearLineItemAssignment(ctx, lineItemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear line item stamp")
	}
	return nil
}

// recomputeQuoteStatus enforces the derivation after an assignment batch:
// every line item stamped means in_production.
func (s *service) recomputeQuoteStatus(ctx context.Context, repo Repository, quoteID uuid.UUID, current enums.QuoteStatus) (enums.QuoteStatus, error) {
	items, err := repo.FindLineItemsByQuote(ctx, quoteID)
	if err != nil {
		return current, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote items")
	}

	allAssigned := len(items) > 0
	for _, item := range items {
		if item.SupplierID == nil {
			allAssigned = false
			break
		}
	}

	if allAssigned && current != enums.QuoteStatusInProduction {
		if err := repo.UpdateQuoteStatus(ctx, quoteID, enums.QuoteStatusInProduction); err != nil {
			return current, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
		}
		return enums.QuoteStatusInProduction, nil
	}
	if allAssigned {
		return enums.QuoteStatusInProduction, nil
	}
	return current, nil
}

// revertQuoteIfNeeded enforces the derivation after a cancellation: an
// in_production quote with any unassigned item drops back to approved.
func (s *service) revertQuoteIfNeeded(ctx context.Context, repo Repository, quoteID uuid.UUID) (bool, error) {
	quote, err := repo.FindQuote(ctx, quoteID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if quote.Status != enums.QuoteStatusInProduction {
		return false, nil
	}

	items, err := repo.FindLineItemsByQuote(ctx, quoteID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote items")
	}
	for _, item := range items {
		if item.SupplierID == nil {
			if err := repo.UpdateQuoteStatus(ctx, quoteID, enums.QuoteStatusApproved); err != nil {
				return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revert quote status")
			}
			return true, nil
		}
	}
	return false, nil
}
