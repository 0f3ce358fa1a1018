package services

import (
	"strings"
	"testing"

	"github.com/taskhub/backend/internal/models"
)

func commentFixture(t *testing.T) (*CommentService, *models.User, *models.Task) {
	t.Helper()

	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Roadmap", owner.ID)

	task := models.Task{Title: "Write docs", Status: models.StatusTodo, ProjectID: project.ID}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return NewCommentService(db), owner, &task
}

func TestCommentCreate(t *testing.T) {
	svc, author, task := commentFixture(t)

	comment, err := svc.Create(&CreateCommentRequest{Text: "looks good"}, task.ID, author.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.Text != "looks good" {
		t.Errorf("Text = %q", comment.Text)
	}
	if comment.Author.Username != "owner" {
		t.Errorf("Author not preloaded, got %q", comment.Author.Username)
	}
	if comment.TaskID != task.ID {
		t.Errorf("TaskID = %d, expected %d", comment.TaskID, task.ID)
	}
}

func TestCommentCreate_TrimsWhitespace(t *testing.T) {
	svc, author, task := commentFixture(t)

	comment, err := svc.Create(&CreateCommentRequest{Text: "  spaced out \n"}, task.ID, author.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.Text != "spaced out" {
		t.Errorf("Text = %q, expected trimmed form", comment.Text)
	}
}

func TestCommentCreate_Rejected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n "},
		{"too long", strings.Repeat("x", 1001)},
		{"too long multibyte", strings.Repeat("世", 1001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, author, task := commentFixture(t)

			_, err := svc.Create(&CreateCommentRequest{Text: tt.text}, task.ID, author.ID)
			assertAppError(t, err, 400)
		})
	}
}

func TestCommentCreate_MaxLengthAccepted(t *testing.T) {
	svc, author, task := commentFixture(t)

	// Exactly 1000 characters after trimming is still valid
	text := strings.Repeat("y", 1000)
	comment, err := svc.Create(&CreateCommentRequest{Text: " " + text + " "}, task.ID, author.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(comment.Text) != 1000 {
		t.Errorf("len(Text) = %d, expected 1000", len(comment.Text))
	}
}

func TestCommentCreate_MultibyteCountedByRune(t *testing.T) {
	svc, author, task := commentFixture(t)

	// 500 characters but 1500 bytes; the limit counts characters
	text := strings.Repeat("世", 500)
	comment, err := svc.Create(&CreateCommentRequest{Text: text}, task.ID, author.ID)
	if err != nil {
		t.Fatalf("500-character comment rejected: %v", err)
	}
	if comment.Text != text {
		t.Errorf("Text altered on save")
	}
}

func TestCommentListByTask(t *testing.T) {
	svc, author, task := commentFixture(t)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Create(&CreateCommentRequest{Text: text}, task.ID, author.ID); err != nil {
			t.Fatalf("Create(%q) error = %v", text, err)
		}
	}

	comments, err := svc.ListByTask(task.ID)
	if err != nil {
		t.Fatalf("ListByTask() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("ListByTask() returned %d comments, expected 3", len(comments))
	}
	// Oldest first
	if comments[0].Text != "first" || comments[2].Text != "third" {
		t.Errorf("comments out of order: %q, %q, %q", comments[0].Text, comments[1].Text, comments[2].Text)
	}
}

func TestCommentListByTask_Empty(t *testing.T) {
	svc, _, task := commentFixture(t)

	comments, err := svc.ListByTask(task.ID)
	if err != nil {
		t.Fatalf("ListByTask() error = %v", err)
	}
	if comments == nil {
		t.Error("ListByTask() should return an empty slice, not nil")
	}
	if len(comments) != 0 {
		t.Errorf("ListByTask() returned %d comments, expected 0", len(comments))
	}
}
