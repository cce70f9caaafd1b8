package menu

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage abstracts the object store the upload handler writes into.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// UploadMenu stores the raw file and creates (or replaces) the hall's
// upload row. Replacing restarts the processing pipeline.
func (s *Service) UploadMenu(ctx context.Context, hallID int, filename string, body io.Reader) (int, string, error) {
	if err := ValidateFileExtension(filename); err != nil {
		return 0, "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("menus/%d/%s%s", hallID, uuid.New().String(), ext)

	if _, err := s.storage.Upload(ctx, key, body); err != nil {
		return 0, "", fmt.Errorf("storage upload: %w", err)
	}

	return s.repo.UpsertUpload(ctx, hallID, key, filename)
}

func (s *Service) GetStatus(ctx context.Context, hallID int) (*UploadStatus, error) {
	return s.repo.GetStatus(ctx, hallID)
}

func (s *Service) Retry(ctx context.Context, hallID int) error {
	return s.repo.RetryFailed(ctx, hallID)
}

// SaveParsedResult validates a parser's output before persisting it, so
// a malformed document never reaches the review UI.
func (s *Service) SaveParsedResult(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("parsed menu invalid: %w", err)
	}
	return s.repo.SaveParsed(ctx, hallID, doc)
}

func (s *Service) MarkParsingFailed(ctx context.Context, hallID int, reason string) error {
	return s.repo.MarkFailed(ctx, hallID, reason)
}

func (s *Service) GetWeekly(ctx context.Context, hallID int) (*WeeklyMenu, error) {
	return s.repo.GetWeekly(ctx, hallID)
}

// UpdateWeekly applies a staff review edit to the parsed menu.
func (s *Service) UpdateWeekly(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return s.repo.ReplaceWeekly(ctx, hallID, doc)
}

func (s *Service) ListPending(ctx context.Context) ([]MenuUpload, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Approve(ctx context.Context, hallID int, adminID string) error {
	return s.repo.Approve(ctx, hallID, adminID)
}

func (s *Service) Reject(ctx context.Context, hallID int, adminID, reason string) error {
	return s.repo.Reject(ctx, hallID, adminID, reason)
}
