package usecase

import (
	"vet-clinic/internal/data/repository"
	"vet-clinic/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Validation ValidationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	hasher := utils.NewBcryptHasher(config.Auth.BcryptCost)
	clock := utils.SystemClock{}

	return &Service{
		Auth:       NewAuthService(repo.User, hasher, clock, config.Auth.MinPasswordLength, log),
		User:       NewUserService(repo.User, hasher, clock, log),
		Validation: NewValidationService(clock, log),
	}
}
