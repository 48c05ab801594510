package services

import (
	"fmt"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModerationConfig holds tunables for report-driven moderation.
type ModerationConfig struct {
	// ReportThreshold is the distinct-reporter count an article may
	// accumulate before being removed; one more report trashes it.
	ReportThreshold int
}

// DefaultModerationConfig returns the production moderation settings.
func DefaultModerationConfig() ModerationConfig {
	return ModerationConfig{
		ReportThreshold: 3,
	}
}

// ModerationService tracks distinct reporters per article and
// auto-removes articles past the threshold.
type ModerationService struct {
	db     *gorm.DB
	config ModerationConfig
}

// NewModerationService creates a new ModerationService
func NewModerationService(db *gorm.DB, config ModerationConfig) *ModerationService {
	return &ModerationService{
		db:     db,
		config: config,
	}
}

// ReportOutcome describes the result of a report submission.
type ReportOutcome struct {
	// Removed is true when this report pushed the article past the
	// threshold and it was transitioned to trash.
	Removed       bool `json:"removed"`
	ReporterCount int  `json:"reporter_count"`
}

// ReportArticle records a distinct reporter against a published
// article. A repeat report from the same user fails with
// ErrAlreadyReported and changes nothing. The article and report rows
// are read under FOR UPDATE locks so concurrent reporters serialize on
// the aggregate: the reporter set is read-modify-write, and an
// unlocked read under read committed would let two reporters append to
// the same stale array, losing one of them. The threshold check and
// the status transition ride the same transaction so two concurrent
// reports cannot double-trigger the removal.
func (s *ModerationService) ReportArticle(userID, articleID uuid.UUID) (*ReportOutcome, error) {
	var outcome ReportOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", articleID, models.StatusPublish).
			First(&article).Error
		if err != nil {
			return translateNotFound(err)
		}

		var report models.Report
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("article_id = ?", articleID).First(&report).Error
		if err == gorm.ErrRecordNotFound {
			report = models.Report{
				ID:          uuid.New(),
				ArticleID:   articleID,
				ReporterIDs: []string{userID.String()},
			}
			if err := tx.Create(&report).Error; err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		} else {
			if report.HasReporter(userID) {
				return ErrAlreadyReported
			}
			report.ReporterIDs = append(report.ReporterIDs, userID.String())
			if err := tx.Model(&report).Update("reporter_ids", report.ReporterIDs).Error; err != nil {
				return fmt.Errorf("failed to record reporter: %w", err)
			}
		}

		outcome.ReporterCount = len(report.ReporterIDs)
		if outcome.ReporterCount > s.config.ReportThreshold {
			if err := tx.Model(&article).UpdateColumn("status", models.StatusTrash).Error; err != nil {
				return fmt.Errorf("failed to remove article: %w", err)
			}
			outcome.Removed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
