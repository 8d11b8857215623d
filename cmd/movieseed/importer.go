package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"moviecatalog/httpserver"
	"moviecatalog/movie"

	"github.com/goccy/go-json"
)

const noGenres = "(no genres listed)"

var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

// importCSV creates one movie per MovieLens row. Rows without a release year
// are skipped.
func importCSV(ctx context.Context, movies MovieCreator, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		m, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			slog.Warn("skipping movielens row", "record", record)
			continue
		}
		if _, err := movies.CreateMovie(ctx, m); err != nil {
			return count, fmt.Errorf("create %q: %w", m.Title, err)
		}
		count++
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (movie.Movie, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movie.Movie{}, false
	}

	title, year, ok := splitTitleYear(record[idxTitle])
	if !ok {
		return movie.Movie{}, false
	}

	var genres []string
	if raw := strings.TrimSpace(record[idxGenres]); raw != "" && raw != noGenres {
		for _, g := range strings.Split(raw, "|") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
	}

	return movie.Movie{Title: title, Year: year, Genres: genres}, true
}

// splitTitleYear turns "Heat (1995)" into "Heat" and "1995".
func splitTitleYear(raw string) (string, string, bool) {
	match := titleYear.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// importJSON loads a JSON array shaped like the POST /api/movies body.
func importJSON(ctx context.Context, movies MovieCreator, r io.Reader, limit int) (int, error) {
	var payloads []httpserver.MovieRequest
	if err := json.NewDecoder(r).Decode(&payloads); err != nil {
		return 0, fmt.Errorf("decode movies: %w", err)
	}

	validate := httpserver.NewValidator()
	count := 0
	for i, payload := range payloads {
		if limit > 0 && count >= limit {
			break
		}
		if err := validate.Validate(payload); err != nil {
			return count, fmt.Errorf("movie #%d: %w", i, err)
		}
		if _, err := movies.CreateMovie(ctx, payload.ToMovie()); err != nil {
			return count, fmt.Errorf("create %q: %w", payload.Title, err)
		}
		count++
	}

	return count, nil
}
