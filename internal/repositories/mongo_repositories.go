package repositories

import (
	"context"
	"errors"
	"math"
	"regexp"
	"time"

	"golang-storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func noDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// Product Repository
type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{
		collection: db.Collection("products"),
	}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, noDocuments(err)
	}
	return &product, nil
}

func productQuery(filter ProductFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Subcategory != "" {
		query["subcategory"] = filter.Subcategory
	}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"short_description": bson.M{"$regex": pattern, "$options": "i"}},
			{"brand": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return query
}

// Find returns one page of products, newest first, and the total match count.
func (r *productRepository) Find(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	query := productQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetByCreator(ctx context.Context, email string) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"created_by": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, count int) error {
	update := bson.M{
		"$set": bson.M{
			"rating":       rating,
			"review_count": count,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Review Repository
type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
	}
}

// EnsureReviewIndexes creates the unique (product_id, user_email) index.
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}, {Key: "user_email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, noDocuments(err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserAndProduct(ctx context.Context, email, productID string) (*models.Review, error) {
	var review models.Review
	filter := bson.M{"user_email": email, "product_id": productID}
	if err := r.collection.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, noDocuments(err)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"rating":     review.Rating,
		"title":      review.Title,
		"comment":    review.Comment,
		"updated_at": review.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func reviewOrder(sort ReviewSort) bson.D {
	switch sort {
	case ReviewSortOldest:
		return bson.D{{Key: "created_at", Value: 1}}
	case ReviewSortHighest:
		return bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}
	case ReviewSortLowest:
		return bson.D{{Key: "rating", Value: 1}, {Key: "created_at", Value: -1}}
	case ReviewSortHelpful:
		return bson.D{{Key: "helpful", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string, sort ReviewSort, limit, offset int) ([]models.Review, int64, error) {
	filter := bson.M{"product_id": productID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(reviewOrder(sort)).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Stats groups the product's reviews by rating.
func (r *reviewRepository) Stats(ctx context.Context, productID string) (*models.ReviewStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"product_id": productID}},
		{"$group": bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Rating int `bson:"_id"`
		Count  int `bson:"count"`
	}
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	stats := &models.ReviewStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, b := range buckets {
		stats.Distribution[b.Rating] = b.Count
		stats.TotalReviews += b.Count
		sum += b.Rating * b.Count
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*10) / 10
	}
	return stats, nil
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"helpful": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
