package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "quizku_backend/internals/features/progress/progress/model"
	progressService "quizku_backend/internals/features/progress/progress/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

const (
	// AuditStatusComplete: record set equals the catalog exactly.
	AuditStatusComplete = "complete"
	// AuditStatusUntouched: no records yet, genuinely not started.
	AuditStatusUntouched = "untouched"
	// AuditStatusIncomplete: records exist but the key set is broken —
	// an integrity violation that needs reconciling, not normal traffic.
	AuditStatusIncomplete = "incomplete"
)

type CycleAudit struct {
	UserID       uuid.UUID `json:"user_id"`
	CycleNumber  int       `json:"cycle_number"`
	Status       string    `json:"status"`
	CatalogTotal int       `json:"catalog_total"`
	RecordCount  int       `json:"record_count"`
	DistinctKeys int       `json:"distinct_keys"`

	MissingKeys   []string `json:"missing_keys,omitempty"`
	ExtraKeys     []string `json:"extra_keys,omitempty"`
	DuplicateKeys []string `json:"duplicate_keys,omitempty"`
}

// AuditCycle compares one cycle's key set against the catalog: cardinality
// and membership, on the composite (module, section) key. It reports, never
// repairs.
func (s *CycleService) AuditCycle(db *gorm.DB, userID uuid.UUID, cycleNumber int) (*CycleAudit, error) {
	if userID == uuid.Nil {
		return nil, progressService.ErrNotAuthenticated
	}
	if cycleNumber < 1 {
		return nil, fmt.Errorf("%w: cycle number must be >= 1", progressService.ErrValidation)
	}

	var rows []struct {
		ModuleName string
		SectionKey string
		N          int
	}
	if err := db.Model(&progressModel.UserQuizProgressModel{}).
		Select("user_quiz_progress_module_name AS module_name, user_quiz_progress_section_key AS section_key, COUNT(*) AS n").
		Where("user_quiz_progress_user_id = ?", userID).
		Where("user_quiz_progress_cycle_number = ?", cycleNumber).
		Group("user_quiz_progress_module_name, user_quiz_progress_section_key").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	audit := &CycleAudit{
		UserID:       userID,
		CycleNumber:  cycleNumber,
		CatalogTotal: s.Catalog.TotalQuestions(),
	}

	seen := make(map[catalogService.QuestionKey]struct{}, len(rows))
	for _, r := range rows {
		k := catalogService.QuestionKey{ModuleName: r.ModuleName, SectionKey: r.SectionKey}
		seen[k] = struct{}{}
		audit.RecordCount += r.N
		audit.DistinctKeys++
		if r.N > 1 {
			audit.DuplicateKeys = append(audit.DuplicateKeys, keyString(k))
		}
		if !s.Catalog.Has(r.ModuleName, r.SectionKey) {
			audit.ExtraKeys = append(audit.ExtraKeys, keyString(k))
		}
	}
	for _, k := range s.Catalog.Keys() {
		if _, ok := seen[k]; !ok {
			audit.MissingKeys = append(audit.MissingKeys, keyString(k))
		}
	}

	switch {
	case audit.RecordCount == 0:
		audit.Status = AuditStatusUntouched
	case len(audit.MissingKeys) == 0 && len(audit.ExtraKeys) == 0 && len(audit.DuplicateKeys) == 0:
		audit.Status = AuditStatusComplete
	default:
		audit.Status = AuditStatusIncomplete
	}
	return audit, nil
}

// AuditAllCycles audits every (user, cycle) pair that has records and
// returns the broken ones.
func (s *CycleService) AuditAllCycles(db *gorm.DB) ([]CycleAudit, error) {
	var pairs []struct {
		UserID      uuid.UUID
		CycleNumber int
	}
	if err := db.Model(&progressModel.UserQuizProgressModel{}).
		Select("DISTINCT user_quiz_progress_user_id AS user_id, user_quiz_progress_cycle_number AS cycle_number").
		Scan(&pairs).Error; err != nil {
		return nil, err
	}

	violations := make([]CycleAudit, 0)
	for _, p := range pairs {
		audit, err := s.AuditCycle(db, p.UserID, p.CycleNumber)
		if err != nil {
			return violations, err
		}
		if audit.Status == AuditStatusIncomplete {
			violations = append(violations, *audit)
		}
	}
	return violations, nil
}

func keyString(k catalogService.QuestionKey) string {
	return k.ModuleName + "/" + k.SectionKey
}
