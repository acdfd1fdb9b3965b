package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bookreview/internal/data/entity"
	"bookreview/internal/data/repository"
	"bookreview/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewFixture struct {
	users   *stubUserRepo
	books   *stubBookRepo
	reviews *stubReviewRepo
	svc     ReviewService
}

func newReviewFixture() *reviewFixture {
	users := newStubUserRepo()
	books := newStubBookRepo()
	reviews := newStubReviewRepo()

	repo := &repository.Repository{
		User:   users,
		Book:   books,
		Review: reviews,
	}

	aggregator := NewRatingAggregator(reviews, books, zap.NewNop())

	return &reviewFixture{
		users:   users,
		books:   books,
		reviews: reviews,
		svc:     NewReviewService(repo, aggregator, zap.NewNop()),
	}
}

func (f *reviewFixture) addUser(t *testing.T, name string) uuid.UUID {
	t.Helper()

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *reviewFixture) addBook(t *testing.T, title string) uuid.UUID {
	t.Helper()

	book := &entity.Book{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:       title,
		Author:      "Some Author",
		Description: "A description",
	}
	require.NoError(t, f.books.Create(context.Background(), book))
	return book.ID
}

func (f *reviewFixture) submit(t *testing.T, bookID, userID uuid.UUID, rating int, comment string) string {
	t.Helper()

	resp, err := f.svc.CreateReview(context.Background(), userID.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  rating,
		Comment: comment,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestBookWithoutReviewsIsUnrated(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Untouched")

	assert.Nil(t, f.books.averageRating(bookID))
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "The Pragmatic Shelf")
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	f.submit(t, bookID, alice, 4, "solid")
	f.submit(t, bookID, bob, 2, "not for me")

	avg := f.books.averageRating(bookID)
	require.NotNil(t, avg)
	assert.Equal(t, 3.0, *avg)
}

func TestCreateReviewIncludesReviewerName(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Named")
	alice := f.addUser(t, "alice")

	resp, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  5,
		Comment: "loved it",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.UserName)
	assert.Equal(t, bookID.String(), resp.BookID)
}

func TestCreateReviewUnknownBook(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser(t, "alice")

	_, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  uuid.New().String(),
		Rating:  4,
		Comment: "ghost book",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, f.reviews.countAll())
}

func TestDuplicateReviewRejected(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Once Only")
	alice := f.addUser(t, "alice")

	f.submit(t, bookID, alice, 5, "first")

	_, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  1,
		Comment: "second attempt",
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, f.reviews.countAll())
}

func TestConcurrentDuplicateSubmits(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Contended")
	alice := f.addUser(t, "alice")

	const attempts = 16

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
				BookID:  bookID.String(),
				Rating:  3,
				Comment: fmt.Sprintf("attempt %d", i),
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, f.reviews.countAll())
}

func TestInvalidRatingRejectsBeforeAnyWrite(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Strict")
	alice := f.addUser(t, "alice")

	_, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  6,
		Comment: "too enthusiastic",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.reviews.countAll())
	assert.Nil(t, f.books.averageRating(bookID))
}

func TestEmptyCommentRejected(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Quiet")
	alice := f.addUser(t, "alice")

	_, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  4,
		Comment: "",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.reviews.countAll())
}

func TestCreateReviewSurvivesAggregatorFailure(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Resilient")
	alice := f.addUser(t, "alice")

	f.books.updateRatingErr = errors.New("storage hiccup")

	resp, err := f.svc.CreateReview(context.Background(), alice.String(), &request.CreateReviewRequest{
		BookID:  bookID.String(),
		Rating:  5,
		Comment: "still counts",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// review is durable, aggregate stays stale until the next trigger
	assert.Equal(t, 1, f.reviews.countAll())
	assert.Nil(t, f.books.averageRating(bookID))

	// next successful mutation self-heals the aggregate
	f.books.updateRatingErr = nil
	bob := f.addUser(t, "bob")
	f.submit(t, bookID, bob, 3, "fine")

	avg := f.books.averageRating(bookID)
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)
}

func TestUpdateReviewRecomputesAverage(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Changing")
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	reviewID := f.submit(t, bookID, alice, 5, "great")
	f.submit(t, bookID, bob, 1, "poor")

	newRating := 3
	_, err := f.svc.UpdateReview(context.Background(), reviewID, alice.String(), &request.UpdateReviewRequest{
		Rating: &newRating,
	})
	require.NoError(t, err)

	avg := f.books.averageRating(bookID)
	require.NotNil(t, avg)
	assert.Equal(t, 2.0, *avg)
}

func TestUpdateByNonAuthorForbidden(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Guarded")
	alice := f.addUser(t, "alice")
	eve := f.addUser(t, "eve")

	reviewID := f.submit(t, bookID, alice, 4, "original comment")

	newRating := 1
	newComment := "tampered"
	_, err := f.svc.UpdateReview(context.Background(), reviewID, eve.String(), &request.UpdateReviewRequest{
		Rating:  &newRating,
		Comment: &newComment,
	})

	assert.ErrorIs(t, err, ErrForbidden)

	stored, findErr := f.reviews.FindByID(context.Background(), uuid.MustParse(reviewID))
	require.NoError(t, findErr)
	require.NotNil(t, stored)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "original comment", stored.Comment)
}

func TestUpdateMissingReview(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser(t, "alice")

	newRating := 2
	_, err := f.svc.UpdateReview(context.Background(), uuid.New().String(), alice.String(), &request.UpdateReviewRequest{
		Rating: &newRating,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReviewRecomputesAverage(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Shrinking")
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")

	f.submit(t, bookID, alice, 5, "five")
	f.submit(t, bookID, bob, 4, "four")
	lowest := f.submit(t, bookID, carol, 3, "three")

	err := f.svc.DeleteReview(context.Background(), lowest, carol.String(), string(entity.RoleUser))
	require.NoError(t, err)

	avg := f.books.averageRating(bookID)
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)
}

func TestDeleteLastReviewClearsAverage(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Emptied")
	alice := f.addUser(t, "alice")

	reviewID := f.submit(t, bookID, alice, 4, "only one")

	err := f.svc.DeleteReview(context.Background(), reviewID, alice.String(), string(entity.RoleUser))
	require.NoError(t, err)

	assert.Nil(t, f.books.averageRating(bookID))
}

func TestDeleteByNonAuthorForbidden(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Protected")
	alice := f.addUser(t, "alice")
	eve := f.addUser(t, "eve")

	reviewID := f.submit(t, bookID, alice, 4, "mine")

	err := f.svc.DeleteReview(context.Background(), reviewID, eve.String(), string(entity.RoleUser))

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 1, f.reviews.countAll())
}

func TestDeleteByAdminAllowed(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Moderated")
	alice := f.addUser(t, "alice")
	admin := f.addUser(t, "admin")

	reviewID := f.submit(t, bookID, alice, 2, "spam")

	err := f.svc.DeleteReview(context.Background(), reviewID, admin.String(), string(entity.RoleAdmin))
	require.NoError(t, err)

	assert.Equal(t, 0, f.reviews.countAll())
	assert.Nil(t, f.books.averageRating(bookID))
}

func TestGetBookReviewsNewestFirst(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Ordered")
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	older := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
		BookID:  bookID,
		UserID:  alice,
		Rating:  3,
		Comment: "older",
	}
	newer := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		BookID:  bookID,
		UserID:  bob,
		Rating:  5,
		Comment: "newer",
	}
	require.NoError(t, f.reviews.Create(context.Background(), older))
	require.NoError(t, f.reviews.Create(context.Background(), newer))

	reviews, err := f.svc.GetBookReviews(context.Background(), bookID.String())
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "newer", reviews[0].Comment)
	assert.Equal(t, "bob", reviews[0].UserName)
	assert.Equal(t, "older", reviews[1].Comment)
}

func TestGetUserReviewsUnknownUser(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.GetUserReviews(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserReviewsIncludesBookInfo(t *testing.T) {
	f := newReviewFixture()
	bookID := f.addBook(t, "Visible Title")
	alice := f.addUser(t, "alice")

	f.submit(t, bookID, alice, 4, "nice")

	reviews, err := f.svc.GetUserReviews(context.Background(), alice.String())
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	assert.Equal(t, "Visible Title", reviews[0].BookTitle)
	assert.Equal(t, "alice", reviews[0].UserName)
}
