package postgres

import (
	"context"
	"errors"
	"moviecatalog/movie"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID            int64   `gorm:"primaryKey"`
	Title         string  `gorm:"size:255;not null"`
	Year          string  `gorm:"size:255;not null"`
	Poster        string  `gorm:"size:255;not null"`
	ContentRating int     `gorm:"not null"`
	Duration      string  `gorm:"size:255;not null"`
	ReleaseDate   string  `gorm:"size:255;not null"`
	AverageRating float64 `gorm:"not null"`
	OriginalTitle string  `gorm:"size:255;not null"`
	Storyline     string  `gorm:"not null"`
	IMDBRating    float64 `gorm:"column:imdb_rating;not null"`
	PosterURL     string  `gorm:"column:posterurl;not null"`

	Genres  []GenreModel  `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID"`
	Actors  []ActorModel  `gorm:"many2many:movie_actors;joinForeignKey:MovieID;joinReferences:ActorID"`
	Ratings []RatingModel `gorm:"foreignKey:MovieID"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

type GenreModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

func (GenreModel) TableName() string {
	return "genres"
}

type ActorModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

func (ActorModel) TableName() string {
	return "actors"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// List returns one page of movies matching f, ordered by id, and the number
// of matching movies across all pages.
func (r *MovieRepository) List(ctx context.Context, f movie.Filter, p movie.Page) ([]movie.Movie, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&MovieModel{})
		if f.Title != "" {
			q = q.Where(`LOWER(movies.title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(f.Title))+"%")
		}
		if f.Genre != "" {
			q = q.Where(`EXISTS (
				SELECT 1 FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id
				WHERE mg.movie_id = movies.id AND LOWER(g.name) = LOWER(?))`, f.Genre)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []movie.Movie{}, 0, nil
	}

	var models []MovieModel
	err := withAssociations(filtered()).
		Order("movies.id").
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainMovies(models), total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := withAssociations(r.db.WithContext(ctx)).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Exists implements rating.MovieChecker and favorite.MovieChecker.
func (r *MovieRepository) Exists(ctx context.Context, id int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

// Create stores the movie with its genres, actors and anonymous ratings in
// a single transaction. Unknown genre and actor names are created.
func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := toModelMovie(m)
		if err := resolveNames(tx, &model, m); err != nil {
			return err
		}
		model.Ratings = toAnonymousRatings(m.Ratings)

		if err := tx.Omit("Genres.*", "Actors.*").Create(&model).Error; err != nil {
			return err
		}
		id = model.ID
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return r.GetByID(ctx, id)
}

// Update overwrites the movie's fields, replaces its genre and actor sets
// and its anonymous ratings. Ratings owned by users are kept.
func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMovie(tx, m.ID); err != nil {
			return err
		}

		model := toModelMovie(m)
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return err
		}
		if err := resolveNames(tx, &model, m); err != nil {
			return err
		}
		if err := replaceAssociation(tx, &model, "Genres", model.Genres); err != nil {
			return err
		}
		if err := replaceAssociation(tx, &model, "Actors", model.Actors); err != nil {
			return err
		}

		if err := tx.Where("movie_id = ? AND user_id IS NULL", m.ID).Delete(&RatingModel{}).Error; err != nil {
			return err
		}
		ratings := toAnonymousRatings(m.Ratings)
		for i := range ratings {
			ratings[i].MovieID = m.ID
		}
		if len(ratings) > 0 {
			return tx.Create(&ratings).Error
		}
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Delete removes the movie together with its ratings, favorites and
// genre/actor links.
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMovie(tx, id); err != nil {
			return err
		}
		for _, table := range []string{"movie_genres", "movie_actors", "movie_favorites", "ratings"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE movie_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&MovieModel{}, id).Error
	})
}

func (r *MovieRepository) AllGenres(ctx context.Context) ([]movie.Genre, error) {
	var models []GenreModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	genres := make([]movie.Genre, len(models))
	for i, model := range models {
		genres[i] = movie.Genre{ID: model.ID, Name: model.Name}
	}
	return genres, nil
}

func (r *MovieRepository) AllActors(ctx context.Context) ([]movie.Actor, error) {
	var models []ActorModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	actors := make([]movie.Actor, len(models))
	for i, model := range models {
		actors[i] = movie.Actor{ID: model.ID, Name: model.Name}
	}
	return actors, nil
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") }).
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("actors.id") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("ratings.id") })
}

func lockMovie(tx *gorm.DB, id int64) error {
	var existing MovieModel
	q := tx.Select("id")
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.ErrMovieNotFound
		}
		return err
	}
	return nil
}

func resolveNames(tx *gorm.DB, model *MovieModel, m movie.Movie) error {
	genres, err := getOrCreateNames(tx, m.Genres, func(name string) GenreModel {
		return GenreModel{Name: name}
	})
	if err != nil {
		return err
	}
	actors, err := getOrCreateNames(tx, m.Actors, func(name string) ActorModel {
		return ActorModel{Name: name}
	})
	if err != nil {
		return err
	}
	model.Genres = genres
	model.Actors = actors
	return nil
}

// getOrCreateNames inserts the missing names, leaving existing rows alone,
// and reads every requested row back.
func getOrCreateNames[T GenreModel | ActorModel](tx *gorm.DB, names []string, build func(string) T) ([]T, error) {
	if len(names) == 0 {
		return []T{}, nil
	}

	rows := make([]T, len(names))
	for i, name := range names {
		rows[i] = build(name)
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}

	var stored []T
	if err := tx.Where("name IN ?", names).Order("id").Find(&stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func replaceAssociation[T GenreModel | ActorModel](tx *gorm.DB, model *MovieModel, name string, values []T) error {
	assoc := tx.Model(model).Omit(name + ".*").Association(name)
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:            m.ID,
		Title:         m.Title,
		Year:          m.Year,
		Poster:        m.Poster,
		ContentRating: m.ContentRating,
		Duration:      m.Duration,
		ReleaseDate:   m.ReleaseDate,
		AverageRating: m.AverageRating,
		OriginalTitle: m.OriginalTitle,
		Storyline:     m.Storyline,
		IMDBRating:    m.IMDBRating,
		PosterURL:     m.PosterURL,
	}
}

func toAnonymousRatings(values []int) []RatingModel {
	ratings := make([]RatingModel, len(values))
	for i, v := range values {
		ratings[i] = RatingModel{Value: v}
	}
	return ratings
}

func toDomainMovie(model MovieModel) movie.Movie {
	m := movie.Movie{
		ID:            model.ID,
		Title:         model.Title,
		Year:          model.Year,
		Genres:        make([]string, len(model.Genres)),
		Actors:        make([]string, len(model.Actors)),
		Ratings:       make([]int, len(model.Ratings)),
		Poster:        model.Poster,
		ContentRating: model.ContentRating,
		Duration:      model.Duration,
		ReleaseDate:   model.ReleaseDate,
		AverageRating: model.AverageRating,
		OriginalTitle: model.OriginalTitle,
		Storyline:     model.Storyline,
		IMDBRating:    model.IMDBRating,
		PosterURL:     model.PosterURL,
	}
	for i, g := range model.Genres {
		m.Genres[i] = g.Name
	}
	for i, a := range model.Actors {
		m.Actors[i] = a.Name
	}
	for i, r := range model.Ratings {
		m.Ratings[i] = r.Value
	}
	return m
}

func toDomainMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies
}
