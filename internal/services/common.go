package services

import (
	"context"
	"errors"
	"math"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// EventPublisher is satisfied by messaging.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(page, limit int, total int64) Pagination {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: int(total), TotalPages: pages}
}

// pageBounds clamps page and limit and returns the offset.
func pageBounds(page, limit, defaultLimit, maxLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
