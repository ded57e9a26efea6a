package usecase

import (
	"errors"
	"fmt"
	"io"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"
	"sceneyard/pkg/storage"
)

type DownloadUseCase interface {
	// RecordDownload debits the template's credit cost and appends the ledger
	// row. The idempotency key must be supplied by the caller; retrying with
	// the same key returns the original result without a second debit.
	RecordDownload(userID, templateID, idempotencyKey string) (*entity.DownloadResult, error)
	GetHistory(userID string, limit, offset int) ([]*entity.Download, error)
	// StreamTemplateFile serves the zip through the same origin. Only users
	// with a recorded download for the template may stream it.
	StreamTemplateFile(userID, templateID string) (io.ReadCloser, string, int64, error)
}

type downloadUseCase struct {
	downloadRepo  persistent.DownloadRepository
	templateRepo  persistent.TemplateRepository
	storageClient *storage.Client
	publicURL     string
	logger        *logger.Logger
}

func NewDownloadUseCase(
	downloadRepo persistent.DownloadRepository,
	templateRepo persistent.TemplateRepository,
	storageClient *storage.Client,
	publicURL string,
	logger *logger.Logger,
) DownloadUseCase {
	return &downloadUseCase{
		downloadRepo:  downloadRepo,
		templateRepo:  templateRepo,
		storageClient: storageClient,
		publicURL:     publicURL,
		logger:        logger,
	}
}

func (uc *downloadUseCase) RecordDownload(userID, templateID, idempotencyKey string) (*entity.DownloadResult, error) {
	if idempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key is required")
	}

	template, err := uc.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	if template.DownloadAsset == nil {
		return &entity.DownloadResult{
			Success: false,
			Error:   "Template file not available",
		}, nil
	}

	download, replay, err := uc.downloadRepo.RecordPaidDownload(userID, templateID, idempotencyKey, template.CreditsCost)
	if err != nil {
		if errors.Is(err, persistent.ErrInsufficientCredits) {
			return &entity.DownloadResult{
				Success: false,
				Error:   "Insufficient credits",
			}, nil
		}
		uc.logger.Error("Failed to record download for user %s template %s: %v", userID, templateID, err)
		return nil, fmt.Errorf("failed to record download: %w", err)
	}

	if replay {
		uc.logger.Info("Replayed download %s for user %s (key %s)", download.ID, userID, idempotencyKey)
	}

	return &entity.DownloadResult{
		Success:           true,
		DownloadURL:       fmt.Sprintf("%s/api/v1/downloads/%s/file", uc.publicURL, templateID),
		AlreadyDownloaded: replay,
	}, nil
}

func (uc *downloadUseCase) GetHistory(userID string, limit, offset int) ([]*entity.Download, error) {
	return uc.downloadRepo.ListByUser(userID, limit, offset)
}

func (uc *downloadUseCase) StreamTemplateFile(userID, templateID string) (io.ReadCloser, string, int64, error) {
	downloaded, err := uc.downloadRepo.HasDownloaded(userID, templateID)
	if err != nil {
		return nil, "", 0, err
	}
	if !downloaded {
		return nil, "", 0, fmt.Errorf("download not purchased")
	}

	template, err := uc.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, "", 0, err
	}
	if template.DownloadAsset == nil {
		return nil, "", 0, persistent.ErrTemplateNotFound
	}

	return uc.storageClient.StreamObject(template.DownloadAsset.StorageKey)
}
