package services

import (
	"errors"
	"testing"

	"inkstream/internal/models"

	"github.com/google/uuid"
)

func TestCreateCommentAndReply(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, models.StatusPublish)

	parent, err := service.CreateComment(reader.ID, article.ID, nil, "Great read")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if parent.User.Username != "reader" {
		t.Errorf("Expected comment to carry its user, got %q", parent.User.Username)
	}

	reply, err := service.CreateComment(author.ID, article.ID, &parent.ID, "Thanks!")
	if err != nil {
		t.Fatalf("CreateComment reply failed: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		t.Error("Expected reply to reference its parent")
	}

	// Replies to replies are rejected, threads stay two tiers deep
	_, err = service.CreateComment(reader.ID, article.ID, &reply.ID, "Nested")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for nested reply, got %v", err)
	}
}

func TestCreateCommentRequiresPublishedArticle(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	pending := createTestArticle(t, db, author, models.StatusPending)

	_, err := service.CreateComment(reader.ID, pending.ID, nil, "First!")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for pending article, got %v", err)
	}
}

func TestCreateCommentParentOnOtherArticle(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	first := createTestArticle(t, db, author, models.StatusPublish)
	second := createTestArticle(t, db, author, models.StatusPublish)

	parent, err := service.CreateComment(reader.ID, first.ID, nil, "On the first article")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	_, err = service.CreateComment(reader.ID, second.ID, &parent.ID, "Cross-posted reply")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for cross-article parent, got %v", err)
	}
}

func TestListArticleCommentsTwoTiers(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, models.StatusPublish)

	first, _ := service.CreateComment(reader.ID, article.ID, nil, "First thread")
	second, _ := service.CreateComment(author.ID, article.ID, nil, "Second thread")
	if _, err := service.CreateComment(author.ID, article.ID, &first.ID, "Reply one"); err != nil {
		t.Fatalf("CreateComment reply failed: %v", err)
	}
	if _, err := service.CreateComment(reader.ID, article.ID, &first.ID, "Reply two"); err != nil {
		t.Fatalf("CreateComment reply failed: %v", err)
	}

	comments, err := service.ListArticleComments(article.ID, nil)
	if err != nil {
		t.Fatalf("ListArticleComments failed: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("Expected 2 top-level comments, got %d", len(comments))
	}
	if comments[0].ID != first.ID || comments[1].ID != second.ID {
		t.Error("Expected top-level comments ordered oldest first")
	}
	if len(comments[0].Replies) != 2 {
		t.Errorf("Expected 2 replies on the first thread, got %d", len(comments[0].Replies))
	}
	if len(comments[1].Replies) != 0 {
		t.Errorf("Expected no replies on the second thread, got %d", len(comments[1].Replies))
	}
}

func TestListArticleCommentsHidesUnpublished(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	moderator := createTestModerator(t, db, "moderator")
	article := createTestArticle(t, db, author, models.StatusPublish)

	if _, err := service.CreateComment(stranger.ID, article.ID, nil, "While it was up"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	// Pull the article from view; its comments go with it
	db.Model(&models.Article{}).Where("id = ?", article.ID).
		UpdateColumn("status", models.StatusTrash)

	if _, err := service.ListArticleComments(article.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for anonymous reader, got %v", err)
	}
	if _, err := service.ListArticleComments(article.ID, principalFor(stranger)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-author, got %v", err)
	}

	comments, err := service.ListArticleComments(article.ID, principalFor(author))
	if err != nil {
		t.Fatalf("ListArticleComments as author failed: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("Expected author to see 1 comment, got %d", len(comments))
	}

	if _, err := service.ListArticleComments(article.ID, principalFor(moderator)); err != nil {
		t.Errorf("Expected superuser to see comments, got %v", err)
	}

	if _, err := service.ListArticleComments(uuid.New(), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown article, got %v", err)
	}
}

func TestUpdateCommentPermissions(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	moderator := createTestModerator(t, db, "moderator")
	article := createTestArticle(t, db, author, models.StatusPublish)

	comment, _ := service.CreateComment(reader.ID, article.ID, nil, "Original")

	_, err := service.UpdateComment(comment.ID, principalFor(author), "Edited by author")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied for non-owner, got %v", err)
	}

	updated, err := service.UpdateComment(comment.ID, principalFor(moderator), "Moderated")
	if err != nil {
		t.Fatalf("UpdateComment as superuser failed: %v", err)
	}
	if updated.Content != "Moderated" {
		t.Errorf("Expected updated content, got %q", updated.Content)
	}
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	db := setupTestDB(t)
	service := NewCommentsService(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, models.StatusPublish)

	parent, _ := service.CreateComment(reader.ID, article.ID, nil, "Thread")
	if _, err := service.CreateComment(author.ID, article.ID, &parent.ID, "Reply"); err != nil {
		t.Fatalf("CreateComment reply failed: %v", err)
	}

	if err := service.DeleteComment(parent.ID, principalFor(reader)); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	var remaining int64
	db.Model(&models.Comment{}).Where("article_id = ?", article.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("Expected replies deleted with their parent, %d comments remain", remaining)
	}
}
