package repository

import (
	"errors"

	"bookreview/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Storage-level constraint violations, translated by the usecase layer
var (
	ErrDuplicateReview = errors.New("review already exists for this book and user")
	ErrDuplicateEmail  = errors.New("email already registered")
)

type Repository struct {
	User   UserRepository
	Book   BookRepository
	Review ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Book:   NewBookRepository(db, log),
		Review: NewReviewRepository(db, log),
	}
}

// isUniqueViolation reports whether err is a unique constraint violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
