package postgres

import (
	"context"
	"moviecatalog/movie"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteModel is a row of the movie_favorites join table.
type FavoriteModel struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	MovieID   int64     `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (FavoriteModel) TableName() string {
	return "movie_favorites"
}

// FavoriteRepository implements favorite.Repository interface
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add keeps a single row per (user, movie); repeated calls are no-ops.
func (r *FavoriteRepository) Add(ctx context.Context, userID, movieID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FavoriteModel{UserID: userID, MovieID: movieID}).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, movieID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&FavoriteModel{}).Error
}

func (r *FavoriteRepository) MoviesOf(ctx context.Context, userID int64) ([]movie.Movie, error) {
	var models []MovieModel
	err := withAssociations(r.db.WithContext(ctx)).
		Joins("JOIN movie_favorites ON movie_favorites.movie_id = movies.id").
		Where("movie_favorites.user_id = ?", userID).
		Order("movies.id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainMovies(models), nil
}
