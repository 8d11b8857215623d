package movie

import "context"

type Service interface {
	ListMovies(ctx context.Context, f Filter, p Page) (Paged, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, m Movie) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	ListGenres(ctx context.Context) ([]Genre, error)
	ListActors(ctx context.Context) ([]Actor, error)
}

type Repository interface {
	List(ctx context.Context, f Filter, p Page) ([]Movie, int64, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, m Movie) (Movie, error)
	Delete(ctx context.Context, id int64) error
	AllGenres(ctx context.Context) ([]Genre, error)
	AllActors(ctx context.Context) ([]Actor, error)
}

type Usecase struct {
	r           Repository
	pageSize    int
	maxPageSize int
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r:           r,
		pageSize:    DefaultPageSize,
		maxPageSize: MaxPageSize,
	}
}

// WithPageSizes overrides the default and maximum page sizes of listings.
func (uc *Usecase) WithPageSizes(pageSize, maxPageSize int) *Usecase {
	if pageSize > 0 && maxPageSize >= pageSize {
		uc.pageSize = pageSize
		uc.maxPageSize = maxPageSize
	}
	return uc
}

func (uc *Usecase) ListMovies(ctx context.Context, f Filter, p Page) (Paged, error) {
	p = p.NormalizeWith(uc.pageSize, uc.maxPageSize)
	movies, total, err := uc.r.List(ctx, f.Normalize(), p)
	if err != nil {
		return Paged{}, err
	}
	return Paged{Items: movies, Total: total, Page: p}, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrInvalidID
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = 0
	return uc.r.Create(ctx, m)
}

// UpdateMovie replaces every field of the movie, including its genre, actor
// and anonymous rating sets. Ratings owned by users are kept.
func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, m Movie) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrInvalidID
	}
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = id
	return uc.r.Update(ctx, m)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return uc.r.Delete(ctx, id)
}

func (uc *Usecase) ListGenres(ctx context.Context) ([]Genre, error) {
	return uc.r.AllGenres(ctx)
}

func (uc *Usecase) ListActors(ctx context.Context) ([]Actor, error) {
	return uc.r.AllActors(ctx)
}
