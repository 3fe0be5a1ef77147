package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product model - MongoDB (flexible catalog data)
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	ShortDescription string             `bson:"short_description,omitempty" json:"shortDescription,omitempty"`
	FullDescription  string             `bson:"full_description,omitempty" json:"fullDescription,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	OriginalPrice    *float64           `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	ImageURL         string             `bson:"image_url" json:"imageUrl"`
	Category         string             `bson:"category" json:"category"`
	Subcategory      string             `bson:"subcategory" json:"subcategory"`
	Brand            string             `bson:"brand" json:"brand"`
	Rating           float64            `bson:"rating" json:"rating"`
	ReviewCount      int                `bson:"review_count" json:"reviewCount"`
	Specifications   map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Features         []string           `bson:"features,omitempty" json:"features,omitempty"`
	CreatedBy        string             `bson:"created_by" json:"createdBy"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Review model - MongoDB
// One review per (product_id, user_email).
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID string             `bson:"product_id" json:"productId"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
	UserName  string             `bson:"user_name" json:"userName"`
	UserImage string             `bson:"user_image,omitempty" json:"userImage,omitempty"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Title     string             `bson:"title" json:"title"`
	Comment   string             `bson:"comment" json:"comment"`
	Helpful   int                `bson:"helpful" json:"helpful"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ReviewStats summarises the reviews of one product.
type ReviewStats struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"distribution"`
}
