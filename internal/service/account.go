package service

import (
	"context"

	"aaaquest/internal/report"
	"aaaquest/internal/repository"
)

// AccountService handles account level exports
type AccountService struct {
	progressRepo repository.ProgressRepository
}

// NewAccountService creates a new account service
func NewAccountService(progressRepo repository.ProgressRepository) *AccountService {
	return &AccountService{progressRepo: progressRepo}
}

// ExportHistory returns the user's score history as an xlsx workbook
func (s *AccountService) ExportHistory(ctx context.Context, userID string) ([]byte, error) {
	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.HistoryWorkbook(progress.History)
}
