package services

import (
	"errors"
	"fmt"
	"testing"

	"inkstream/internal/models"
)

func TestReportThresholdRemovesArticle(t *testing.T) {
	db := setupTestDB(t)
	service := NewModerationService(db, DefaultModerationConfig())

	author := createTestUser(t, db, "author")
	article := createTestArticle(t, db, author, models.StatusPublish)

	// The first three distinct reporters do not remove the article
	for i := 0; i < 3; i++ {
		reporter := createTestUser(t, db, fmt.Sprintf("reporter%d", i))
		outcome, err := service.ReportArticle(reporter.ID, article.ID)
		if err != nil {
			t.Fatalf("ReportArticle %d failed: %v", i+1, err)
		}
		if outcome.Removed {
			t.Fatalf("Article removed after %d reports, threshold is 3", i+1)
		}
		if outcome.ReporterCount != i+1 {
			t.Errorf("Expected reporter count %d, got %d", i+1, outcome.ReporterCount)
		}
	}

	var current models.Article
	db.First(&current, "id = ?", article.ID)
	if current.Status != models.StatusPublish {
		t.Fatalf("Expected article to stay published at the threshold, got %q", current.Status)
	}

	// One more report crosses the threshold
	last := createTestUser(t, db, "reporter3")
	outcome, err := service.ReportArticle(last.ID, article.ID)
	if err != nil {
		t.Fatalf("ReportArticle failed: %v", err)
	}
	if !outcome.Removed {
		t.Error("Expected the fourth report to remove the article")
	}

	db.First(&current, "id = ?", article.ID)
	if current.Status != models.StatusTrash {
		t.Errorf("Expected article status trash after removal, got %q", current.Status)
	}

	// The article is no longer published, so further reports miss
	extra := createTestUser(t, db, "reporter4")
	if _, err := service.ReportArticle(extra.ID, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound reporting a removed article, got %v", err)
	}
}

func TestReportAccumulatesDistinctReporters(t *testing.T) {
	db := setupTestDB(t)
	service := NewModerationService(db, DefaultModerationConfig())

	author := createTestUser(t, db, "author")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")
	article := createTestArticle(t, db, author, models.StatusPublish)

	if _, err := service.ReportArticle(first.ID, article.ID); err != nil {
		t.Fatalf("ReportArticle failed: %v", err)
	}
	if _, err := service.ReportArticle(second.ID, article.ID); err != nil {
		t.Fatalf("ReportArticle failed: %v", err)
	}

	// Both reporters land in the stored set; the second append must not
	// overwrite the first
	var report models.Report
	if err := db.First(&report, "article_id = ?", article.ID).Error; err != nil {
		t.Fatalf("Failed to load report: %v", err)
	}
	if !report.HasReporter(first.ID) || !report.HasReporter(second.ID) {
		t.Errorf("Expected both reporters recorded, got %v", report.ReporterIDs)
	}
	if len(report.ReporterIDs) != 2 {
		t.Errorf("Expected 2 recorded reporters, got %d", len(report.ReporterIDs))
	}
}

func TestRepeatReporterRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewModerationService(db, DefaultModerationConfig())

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	article := createTestArticle(t, db, author, models.StatusPublish)

	if _, err := service.ReportArticle(reporter.ID, article.ID); err != nil {
		t.Fatalf("ReportArticle failed: %v", err)
	}

	_, err := service.ReportArticle(reporter.ID, article.ID)
	if !errors.Is(err, ErrAlreadyReported) {
		t.Fatalf("Expected ErrAlreadyReported on repeat report, got %v", err)
	}

	// The rejection changes nothing
	var report models.Report
	if err := db.First(&report, "article_id = ?", article.ID).Error; err != nil {
		t.Fatalf("Failed to load report: %v", err)
	}
	if len(report.ReporterIDs) != 1 {
		t.Errorf("Expected a single recorded reporter, got %d", len(report.ReporterIDs))
	}

	var current models.Article
	db.First(&current, "id = ?", article.ID)
	if current.Status != models.StatusPublish {
		t.Errorf("Expected article to stay published, got %q", current.Status)
	}
}

func TestReportRequiresPublishedArticle(t *testing.T) {
	db := setupTestDB(t)
	service := NewModerationService(db, DefaultModerationConfig())

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	pending := createTestArticle(t, db, author, models.StatusPending)

	_, err := service.ReportArticle(reporter.ID, pending.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for pending article, got %v", err)
	}
}
