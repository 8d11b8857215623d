package postgres

import (
	"context"
	"errors"
	"moviecatalog/rating"
	"time"

	"gorm.io/gorm"
)

// RatingModel represents the database model for ratings. A NULL user_id
// marks a rating imported with the movie.
type RatingModel struct {
	ID        int64     `gorm:"primaryKey"`
	MovieID   int64     `gorm:"not null;index"`
	UserID    *int64    `gorm:"index"`
	Value     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (RatingModel) TableName() string {
	return "ratings"
}

// RatingRepository implements rating.Repository interface
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (rating.Rating, error) {
	var model RatingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Order("id").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rating.Rating{}, rating.ErrRatingNotFound
		}
		return rating.Rating{}, err
	}
	return toDomainRating(model), nil
}

func (r *RatingRepository) Create(ctx context.Context, rt rating.Rating) (rating.Rating, error) {
	model := RatingModel{
		MovieID: rt.MovieID,
		UserID:  rt.UserID,
		Value:   rt.Value,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return rating.Rating{}, err
	}
	return toDomainRating(model), nil
}

func (r *RatingRepository) UpdateValue(ctx context.Context, id int64, value int) (rating.Rating, error) {
	result := r.db.WithContext(ctx).Model(&RatingModel{ID: id}).Update("value", value)
	if result.Error != nil {
		return rating.Rating{}, result.Error
	}
	if result.RowsAffected == 0 {
		return rating.Rating{}, rating.ErrRatingNotFound
	}

	var model RatingModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return rating.Rating{}, err
	}
	return toDomainRating(model), nil
}

func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&RatingModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepository) ListByMovie(ctx context.Context, movieID int64) ([]rating.Rating, error) {
	return r.list(ctx, "movie_id = ?", movieID)
}

func (r *RatingRepository) ListByUser(ctx context.Context, userID int64) ([]rating.Rating, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *RatingRepository) list(ctx context.Context, query string, arg int64) ([]rating.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	ratings := make([]rating.Rating, len(models))
	for i, model := range models {
		ratings[i] = toDomainRating(model)
	}
	return ratings, nil
}

func toDomainRating(model RatingModel) rating.Rating {
	return rating.Rating{
		ID:        model.ID,
		MovieID:   model.MovieID,
		UserID:    model.UserID,
		Value:     model.Value,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
