package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"quizku_backend/internals/features/progress/cycles/service"
	catalogService "quizku_backend/internals/features/quiz/catalog/service"
)

// StartProgressAuditScheduler runs the integrity audit periodically. Broken
// cycles are reported in the log for an operator to reconcile; the audit
// never patches data on its own.
func StartProgressAuditScheduler(db *gorm.DB, catalog *catalogService.Catalog) *gocron.Scheduler {
	intervalHours := 24
	if v := os.Getenv("PROGRESS_AUDIT_INTERVAL_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			intervalHours = parsed
		}
	}

	svc := service.NewCycleService(catalog)

	s := gocron.NewScheduler(time.Local)
	_, err := s.Every(intervalHours).Hours().Do(func() {
		runAudit(db, svc, catalog)
	})
	if err != nil {
		log.Printf("[ERROR] Failed to schedule progress audit: %v", err)
		return s
	}
	s.StartAsync()

	log.Printf("[INFO] Progress audit scheduled every %d hour(s)", intervalHours)
	return s
}

func runAudit(db *gorm.DB, svc *service.CycleService, catalog *catalogService.Catalog) {
	log.Println("[AUDIT] Running progress integrity audit...")

	violations, err := svc.AuditAllCycles(db)
	if err != nil {
		log.Printf("[AUDIT ERROR] Audit run failed: %v", err)
		return
	}
	for _, v := range violations {
		log.Printf("[AUDIT] Integrity violation: user=%s cycle=%d records=%d distinct=%d missing=%d extra=%d duplicate=%d",
			v.UserID, v.CycleNumber, v.RecordCount, v.DistinctKeys,
			len(v.MissingKeys), len(v.ExtraKeys), len(v.DuplicateKeys))
	}

	var foreign int64
	if err := db.Table("user_quiz_progress").
		Where("NOT (user_quiz_progress_module_name = ANY(?))", pq.Array(catalog.Modules())).
		Count(&foreign).Error; err != nil {
		log.Printf("[AUDIT ERROR] Foreign-module scan failed: %v", err)
	} else if foreign > 0 {
		log.Printf("[AUDIT] %d progress records reference modules outside the catalog", foreign)
	}

	if len(violations) == 0 && foreign == 0 {
		log.Println("[AUDIT] All cycles consistent with the catalog")
	}
}
