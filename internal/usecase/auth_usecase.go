package usecase

import (
	"context"
	"fmt"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/jwt"
	"sceneyard/pkg/logger"
)

type AuthUseCase interface {
	LoginURL(state string) string
	// HandleCallback exchanges the OAuth code, upserts the local user row and
	// mints a session token. A database failure fails the sign-in; no local
	// fallback identity is issued.
	HandleCallback(ctx context.Context, code string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo          persistent.UserRepository
	walletRepo        persistent.WalletRepository
	oauthProvider     OAuthProvider
	jwtService        *jwt.Service
	signupCreditBonus int
	logger            *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	walletRepo persistent.WalletRepository,
	oauthProvider OAuthProvider,
	jwtService *jwt.Service,
	signupCreditBonus int,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:          userRepo,
		walletRepo:        walletRepo,
		oauthProvider:     oauthProvider,
		jwtService:        jwtService,
		signupCreditBonus: signupCreditBonus,
		logger:            logger,
	}
}

func (uc *authUseCase) LoginURL(state string) string {
	return uc.oauthProvider.AuthCodeURL(state)
}

func (uc *authUseCase) HandleCallback(ctx context.Context, code string) (*entity.User, string, error) {
	googleUser, err := uc.oauthProvider.FetchUser(ctx, code)
	if err != nil {
		uc.logger.Error("Failed to fetch Google user: %v", err)
		return nil, "", fmt.Errorf("failed to verify sign-in: %w", err)
	}

	user, created, err := uc.userRepo.UpsertByEmail(&entity.User{
		Email:      googleUser.Email,
		Name:       googleUser.Name,
		AvatarURL:  googleUser.Picture,
		Provider:   "google",
		ProviderID: googleUser.ID,
	})
	if err != nil {
		uc.logger.Error("Failed to upsert user %s: %v", googleUser.Email, err)
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}

	if created && uc.signupCreditBonus > 0 {
		if _, err := uc.walletRepo.Credit(user.ID, uc.signupCreditBonus, entity.CreditTransactionTypeGrant, ""); err != nil {
			// The account is usable without the bonus; don't fail the sign-in.
			uc.logger.Error("Failed to grant signup bonus to user %s: %v", user.ID, err)
		}
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}
