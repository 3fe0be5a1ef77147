package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/pkg/cache"
	"golang-storefront/pkg/messaging"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultReviewPage = 5
	maxReviewPage     = 50
	maxReviewTitle    = 100
	maxReviewComment  = 1000
)

type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	cache       *cache.RedisCache
	events      EventPublisher
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	cache *cache.RedisCache,
	events EventPublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cache:       cache,
		events:      events,
	}
}

type ReviewRequest struct {
	ProductID string `json:"productId"`
	UserEmail string `json:"userEmail" binding:"required"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

func (r *ReviewRequest) validate() error {
	if r.Rating == 0 {
		return fmt.Errorf("%w: rating is required", ErrInvalidInput)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Comment = strings.TrimSpace(r.Comment)
	if utf8.RuneCountInString(r.Title) > maxReviewTitle {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxReviewTitle)
	}
	if utf8.RuneCountInString(r.Comment) > maxReviewComment {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, maxReviewComment)
	}
	return nil
}

type ReviewPage struct {
	Reviews    []models.Review     `json:"reviews"`
	Stats      *models.ReviewStats `json:"stats"`
	Pagination Pagination          `json:"pagination"`
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID, sort string, page, limit int) (*ReviewPage, error) {
	page, limit, offset := pageBounds(page, limit, defaultReviewPage, maxReviewPage)

	reviews, total, err := s.reviewRepo.ListByProduct(ctx, productID, repositories.ReviewSort(sort), limit, offset)
	if err != nil {
		return nil, err
	}
	stats, err := s.reviewRepo.Stats(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ReviewPage{
		Reviews:    reviews,
		Stats:      stats,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// GetUserReview returns nil when the user has not reviewed the product.
func (s *ReviewService) GetUserReview(ctx context.Context, email, productID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByUserAndProduct(ctx, email, productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return review, err
}

func (s *ReviewService) CreateReview(ctx context.Context, req *ReviewRequest) (*models.Review, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}

	existing, err := s.GetUserReview(ctx, req.UserEmail, req.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you have already reviewed this product", ErrConflict)
	}

	verified, err := s.orderRepo.HasDelivered(ctx, req.UserEmail, req.ProductID)
	if err != nil {
		log.Printf("Error checking purchase for review by %s: %v", req.UserEmail, err)
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		UserImage: req.UserImage,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		Verified:  verified,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshProductRating(ctx, review.ProductID)

	event := messaging.ReviewEvent{
		Type:      messaging.EventReviewCreated,
		ReviewID:  review.ID.Hex(),
		ProductID: review.ProductID,
		UserEmail: review.UserEmail,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}
	if err := s.events.Publish(ctx, messaging.TopicReviews, review.ProductID, event); err != nil {
		log.Printf("Error publishing review event for %s: %v", review.ID.Hex(), err)
	}
	return review, nil
}

func (s *ReviewService) ownedReview(ctx context.Context, reviewID, email string) (*models.Review, error) {
	id, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, ErrNotFound
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if review.UserEmail != email {
		return nil, ErrForbidden
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, req *ReviewRequest) (*models.Review, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	review, err := s.ownedReview(ctx, reviewID, req.UserEmail)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Comment = req.Comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.refreshProductRating(ctx, review.ProductID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, email string) error {
	review, err := s.ownedReview(ctx, reviewID, email)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return err
	}
	s.refreshProductRating(ctx, review.ProductID)
	return nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) error {
	id, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return ErrNotFound
	}
	err = s.reviewRepo.IncrementHelpful(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// refreshProductRating copies the review stats onto the product document.
func (s *ReviewService) refreshProductRating(ctx context.Context, productID string) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return
	}
	stats, err := s.reviewRepo.Stats(ctx, productID)
	if err != nil {
		log.Printf("Error computing review stats for %s: %v", productID, err)
		return
	}
	if err := s.productRepo.UpdateRating(ctx, id, stats.AverageRating, stats.TotalReviews); err != nil {
		log.Printf("Error updating rating for %s: %v", productID, err)
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, productCachePrefix); err != nil {
		log.Printf("Error clearing product cache: %v", err)
	}
}
