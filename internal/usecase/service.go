package usecase

import (
	"bookreview/internal/data/repository"
	"bookreview/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Book   BookService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	aggregator := NewRatingAggregator(repo.Review, repo.Book, log)

	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, log),
		Book:   NewBookService(repo, log),
		Review: NewReviewService(repo, aggregator, log),
	}
}
