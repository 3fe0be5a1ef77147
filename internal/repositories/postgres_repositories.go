package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang-storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Saved list Repository
type savedListRepository struct {
	db *gorm.DB
}

func NewSavedListRepository(db *gorm.DB) SavedListRepository {
	return &savedListRepository{db: db}
}

func (r *savedListRepository) Get(ctx context.Context, kind, email string) (*models.SavedList, error) {
	var list models.SavedList
	err := r.db.WithContext(ctx).Where("kind = ? AND email = ?", kind, email).First(&list).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &list, nil
}

func (r *savedListRepository) Upsert(ctx context.Context, list *models.SavedList) error {
	list.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(list).Error
}

func (r *savedListRepository) Delete(ctx context.Context, kind, email string) error {
	return r.db.WithContext(ctx).Where("kind = ? AND email = ?", kind, email).Delete(&models.SavedList{}).Error
}

// Order Repository
type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *orderRepository) GetByUserEmail(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Where("user_email = ?", email).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) HasDelivered(ctx context.Context, email, productID string) (bool, error) {
	contains, err := json.Marshal([]map[string]string{{"productId": productID}})
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_email = ? AND status = ?", email, models.OrderStatusDelivered).
		Where("items @> ?", string(contains)).
		Count(&count).Error
	return count > 0, err
}
