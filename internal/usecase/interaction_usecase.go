package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const likeCountCacheTTL = 5 * time.Minute

type ToggleLikeResult struct {
	Liked    bool  `json:"liked"`
	NewCount int64 `json:"new_count"`
}

type InteractionUseCase interface {
	ToggleLike(ctx context.Context, userID, templateID string) (*ToggleLikeResult, error)
	IsLiked(userID, templateID string) (bool, error)
	GetLikeCount(ctx context.Context, templateID string) (int64, error)
	GetLikedTemplates(userID string, limit, offset int) ([]*entity.Template, error)
}

type interactionUseCase struct {
	likeRepo    persistent.LikeRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewInteractionUseCase(likeRepo persistent.LikeRepository, redisClient *redis.Client, logger *logger.Logger) InteractionUseCase {
	return &interactionUseCase{
		likeRepo:    likeRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ToggleLike flips the like and returns the count the transaction committed,
// so the response always reflects the row count, not a drifting counter.
func (uc *interactionUseCase) ToggleLike(ctx context.Context, userID, templateID string) (*ToggleLikeResult, error) {
	liked, count, err := uc.likeRepo.Toggle(userID, templateID)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		cacheKey := likeCountCacheKey(templateID)
		if err := uc.redisClient.Set(ctx, cacheKey, count, likeCountCacheTTL).Err(); err != nil {
			uc.logger.Warn("Failed to refresh like count cache for %s: %v", templateID, err)
		}
	}

	return &ToggleLikeResult{Liked: liked, NewCount: count}, nil
}

func (uc *interactionUseCase) IsLiked(userID, templateID string) (bool, error) {
	return uc.likeRepo.IsLiked(userID, templateID)
}

// GetLikeCount reads through the redis cache and falls back to COUNT(*).
func (uc *interactionUseCase) GetLikeCount(ctx context.Context, templateID string) (int64, error) {
	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, likeCountCacheKey(templateID)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := uc.likeRepo.CountForTemplate(templateID)
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, likeCountCacheKey(templateID), count, likeCountCacheTTL).Err(); err != nil {
			uc.logger.Warn("Failed to cache like count for %s: %v", templateID, err)
		}
	}

	return count, nil
}

func (uc *interactionUseCase) GetLikedTemplates(userID string, limit, offset int) ([]*entity.Template, error) {
	return uc.likeRepo.ListLikedTemplates(userID, limit, offset)
}

func likeCountCacheKey(templateID string) string {
	return fmt.Sprintf("template:%s:likes", templateID)
}
