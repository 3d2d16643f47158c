package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	progressModel "quizku_backend/internals/features/progress/progress/model"
	progressService "quizku_backend/internals/features/progress/progress/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

const (
	insertBatchSize   = 500
	reconcileAttempts = 3
	reconcileBackoff  = 200 * time.Millisecond
)

// CycleService opens, resets and repairs cycles. A cycle is only valid when
// its record set matches the catalog exactly; everything here is written so
// that state is either complete or repairable by ReconcileCycle.
type CycleService struct {
	Catalog  *catalogService.Catalog
	Progress *progressService.ProgressService
}

func NewCycleService(catalog *catalogService.Catalog) *CycleService {
	return &CycleService{
		Catalog:  catalog,
		Progress: progressService.NewProgressService(catalog),
	}
}

func (s *CycleService) GetCurrentCycle(db *gorm.DB, userID uuid.UUID) (int, error) {
	return s.Progress.GetCurrentCycle(db, userID)
}

/* ---------------------------------------------------
   StartNewCycle
--------------------------------------------------- */

// StartNewCycle opens the next cycle with one zero-valued record per catalog
// entry. A fresh user gets cycle 1; anyone else gets max+1. Advancement is
// not gated on completing the prior cycle.
func (s *CycleService) StartNewCycle(db *gorm.DB, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, progressService.ErrNotAuthenticated
	}

	var existing int64
	if err := db.Model(&progressModel.UserQuizProgressModel{}).
		Where("user_quiz_progress_user_id = ?", userID).
		Count(&existing).Error; err != nil {
		return 0, err
	}

	newCycle := 1
	if existing > 0 {
		current, err := s.Progress.GetCurrentCycle(db, userID)
		if err != nil {
			return 0, err
		}
		newCycle = current + 1
	}

	rows := s.zeroRows(userID, newCycle, s.Catalog.Keys())
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		// Transient store failure mid-batch: retry only the missing subset
		// instead of restarting the whole cycle.
		log.Printf("[WARN] Cycle %d bulk insert failed for %s, reconciling: %v", newCycle, userID, err)
		if _, rErr := s.reconcileWithRetry(db, userID, newCycle); rErr != nil {
			return 0, rErr
		}
	}

	audit, err := s.AuditCycle(db, userID, newCycle)
	if err != nil {
		return 0, err
	}
	if audit.Status != AuditStatusComplete {
		return 0, fmt.Errorf("%w: cycle %d for user %s is %s after creation",
			progressService.ErrIntegrityViolation, newCycle, userID, audit.Status)
	}

	log.Printf("[INFO] Cycle %d opened for %s (%d records)", newCycle, userID, len(rows))
	return newCycle, nil
}

func (s *CycleService) zeroRows(userID uuid.UUID, cycleNumber int, keys []catalogService.QuestionKey) []progressModel.UserQuizProgressModel {
	rows := make([]progressModel.UserQuizProgressModel, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, progressModel.UserQuizProgressModel{
			UserQuizProgressUserID:      userID,
			UserQuizProgressModuleName:  k.ModuleName,
			UserQuizProgressSectionKey:  k.SectionKey,
			UserQuizProgressCycleNumber: cycleNumber,
		})
	}
	return rows
}

/* ---------------------------------------------------
   ResetCycle
--------------------------------------------------- */

// ResetCycle deletes every record of one (user, cycle), optionally scoped to
// a single module. Idempotent: deleting an empty cycle is a no-op.
func (s *CycleService) ResetCycle(db *gorm.DB, userID uuid.UUID, cycleNumber int, moduleName string) error {
	if userID == uuid.Nil {
		return progressService.ErrNotAuthenticated
	}
	if cycleNumber < 1 {
		return fmt.Errorf("%w: cycle number must be >= 1", progressService.ErrValidation)
	}

	q := db.
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber)
	if moduleName != "" {
		if !s.Catalog.HasModule(moduleName) {
			return fmt.Errorf("%w: module %s", progressService.ErrInvalidReference, moduleName)
		}
		q = q.Where("user_quiz_progress_module_name = ?", moduleName)
	}

	res := q.Delete(&progressModel.UserQuizProgressModel{})
	if res.Error != nil {
		return res.Error
	}
	log.Printf("[INFO] Cycle %d reset for %s (%d records deleted)", cycleNumber, userID, res.RowsAffected)
	return nil
}

/* ---------------------------------------------------
   ReconcileCycle
--------------------------------------------------- */

// ReconcileCycle inserts catalogKeys minus existingKeys for one (user, cycle)
// and nothing else. This is the one sanctioned repair path; it replaces the
// ad-hoc missing-record scripts the platform used to accumulate.
func (s *CycleService) ReconcileCycle(db *gorm.DB, userID uuid.UUID, cycleNumber int) (int, error) {
	if userID == uuid.Nil {
		return 0, progressService.ErrNotAuthenticated
	}
	if cycleNumber < 1 {
		return 0, fmt.Errorf("%w: cycle number must be >= 1", progressService.ErrValidation)
	}

	existing, err := s.existingKeys(db, userID, cycleNumber)
	if err != nil {
		return 0, err
	}

	missing := make([]catalogService.QuestionKey, 0)
	for _, k := range s.Catalog.Keys() {
		if _, ok := existing[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	rows := s.zeroRows(userID, cycleNumber, missing)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return 0, err
	}

	log.Printf("[INFO] Cycle %d reconciled for %s: %d missing records inserted", cycleNumber, userID, len(missing))
	return len(missing), nil
}

func (s *CycleService) reconcileWithRetry(db *gorm.DB, userID uuid.UUID, cycleNumber int) (int, error) {
	var lastErr error
	total := 0
	for attempt := 1; attempt <= reconcileAttempts; attempt++ {
		n, err := s.ReconcileCycle(db, userID, cycleNumber)
		total += n
		if err == nil {
			return total, nil
		}
		lastErr = err
		log.Printf("[WARN] Reconcile attempt %d/%d failed for %s cycle %d: %v",
			attempt, reconcileAttempts, userID, cycleNumber, err)
		time.Sleep(time.Duration(attempt) * reconcileBackoff)
	}
	return total, lastErr
}

func (s *CycleService) existingKeys(db *gorm.DB, userID uuid.UUID, cycleNumber int) (map[catalogService.QuestionKey]struct{}, error) {
	var rows []struct {
		ModuleName string
		SectionKey string
	}
	if err := db.Model(&progressModel.UserQuizProgressModel{}).
		Select("user_quiz_progress_module_name AS module_name, user_quiz_progress_section_key AS section_key").
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[catalogService.QuestionKey]struct{}, len(rows))
	for _, r := range rows {
		out[catalogService.QuestionKey{ModuleName: r.ModuleName, SectionKey: r.SectionKey}] = struct{}{}
	}
	return out, nil
}
