package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bookreview/internal/data/entity"
	"bookreview/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository stubs. The review stub enforces the (book, user)
// unique constraint inside Create under its lock, mirroring how the
// database resolves concurrent inserts.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*entity.User
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	delete(s.users, id)
	return nil
}

type stubBookRepo struct {
	mu    sync.Mutex
	books map[uuid.UUID]*entity.Book

	// injected failure for the aggregator write path
	updateRatingErr error
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[uuid.UUID]*entity.Book)}
}

func (s *stubBookRepo) Create(ctx context.Context, book *entity.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *stubBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	copied := *book
	return &copied, nil
}

func (s *stubBookRepo) FindAll(ctx context.Context, offset, limit int, genre, search *string) ([]*entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var books []*entity.Book
	for _, b := range s.books {
		if genre != nil && (b.Genre == nil || *b.Genre != *genre) {
			continue
		}
		copied := *b
		books = append(books, &copied)
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})

	if offset >= len(books) {
		return nil, nil
	}
	books = books[offset:]
	if limit < len(books) {
		books = books[:limit]
	}
	return books, nil
}

func (s *stubBookRepo) CountAll(ctx context.Context, genre, search *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, b := range s.books {
		if genre != nil && (b.Genre == nil || *b.Genre != *genre) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *stubBookRepo) DistinctGenres(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var genres []string
	for _, b := range s.books {
		if b.Genre == nil || *b.Genre == "" || seen[*b.Genre] {
			continue
		}
		seen[*b.Genre] = true
		genres = append(genres, *b.Genre)
	}
	sort.Strings(genres)
	return genres, nil
}

func (s *stubBookRepo) Update(ctx context.Context, book *entity.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.books[book.ID]
	if !ok {
		return fmt.Errorf("book %s not found", book.ID.String())
	}

	copied := *book
	copied.AverageRating = existing.AverageRating
	s.books[book.ID] = &copied
	return nil
}

func (s *stubBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return fmt.Errorf("book %s not found", id.String())
	}
	delete(s.books, id)
	return nil
}

func (s *stubBookRepo) UpdateAverageRating(ctx context.Context, bookID uuid.UUID, avg *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateRatingErr != nil {
		return s.updateRatingErr
	}

	book, ok := s.books[bookID]
	if !ok {
		return fmt.Errorf("book %s not found", bookID.String())
	}
	book.AverageRating = avg
	return nil
}

// averageRating reads the stored aggregate without copying
func (s *stubBookRepo) averageRating(id uuid.UUID) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil
	}
	return book.AverageRating
}

type stubReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review

	// injected failure for the aggregator read path
	avgErr error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (s *stubReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// atomic check-and-insert, same outcome as the unique composite index
	for _, rv := range s.reviews {
		if rv.BookID == review.BookID && rv.UserID == review.UserID {
			return repository.ErrDuplicateReview
		}
	}

	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *stubReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

func (s *stubReviewRepo) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews []*entity.Review
	for _, rv := range s.reviews {
		if rv.BookID == bookID {
			copied := *rv
			reviews = append(reviews, &copied)
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *stubReviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews []*entity.Review
	for _, rv := range s.reviews {
		if rv.UserID == userID {
			copied := *rv
			reviews = append(reviews, &copied)
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *stubReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rv := range s.reviews {
		if rv.BookID == bookID && rv.UserID == userID {
			copied := *rv
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubReviewRepo) CountByBookID(ctx context.Context, bookID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, rv := range s.reviews {
		if rv.BookID == bookID {
			count++
		}
	}
	return count, nil
}

func (s *stubReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return fmt.Errorf("review %s not found", review.ID.String())
	}
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *stubReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return fmt.Errorf("review %s not found", id.String())
	}
	delete(s.reviews, id)
	return nil
}

func (s *stubReviewRepo) AverageRatingByBookID(ctx context.Context, bookID uuid.UUID) (*float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.avgErr != nil {
		return nil, s.avgErr
	}

	var sum, count float64
	for _, rv := range s.reviews {
		if rv.BookID == bookID {
			sum += float64(rv.Rating)
			count++
		}
	}

	if count == 0 {
		return nil, nil
	}

	avg := sum / count
	return &avg, nil
}

func (s *stubReviewRepo) countAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}
