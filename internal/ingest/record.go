package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/parse"
)

// Record is one dataset row after field parsing.
type Record struct {
	ID          int64
	Title       string
	Summary     string
	ReleaseDate *time.Time
	Rating      parse.Magnitude
	TimesListed parse.Magnitude
	ReviewCount parse.Magnitude
	Plays       parse.Magnitude
	Playing     parse.Magnitude
	Backlogs    parse.Magnitude
	Wishlist    parse.Magnitude
	Developers  []string
	Genres      []string
	Reviews     []string

	// Issues lists the cells that failed to parse and were stored as absent.
	Issues []error
}

// RowError rejects a whole row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("row: %v", e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var errEmptyTitle = errors.New("empty title")

// Normalize parses a raw row. Malformed dates and numbers degrade to absent
// values recorded in Issues; a bad id, an empty title or a malformed list
// rejects the row with a *RowError.
func Normalize(row []string, layout Layout) (*Record, error) {
	if len(row) != Columns {
		return nil, &RowError{Err: fmt.Errorf("expected %d columns, got %d", Columns, len(row))}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row[layout.ID]), 10, 64)
	if err != nil {
		return nil, &RowError{Err: fmt.Errorf("invalid id: %w", err)}
	}
	rec := &Record{
		ID:      id,
		Title:   strings.TrimSpace(row[layout.Title]),
		Summary: strings.TrimSpace(row[layout.Summary]),
	}
	if rec.Title == "" {
		return nil, &RowError{Err: errEmptyTitle}
	}

	if rec.ReleaseDate, err = parse.ParseDate(row[layout.ReleaseDate]); err != nil {
		rec.Issues = append(rec.Issues, err)
	}

	for _, f := range []struct {
		dst *parse.Magnitude
		col int
	}{
		{&rec.Rating, layout.Rating},
		{&rec.TimesListed, layout.TimesListed},
		{&rec.ReviewCount, layout.ReviewCount},
		{&rec.Plays, layout.Plays},
		{&rec.Playing, layout.Playing},
		{&rec.Backlogs, layout.Backlogs},
		{&rec.Wishlist, layout.Wishlist},
	} {
		m, err := parse.ParseMagnitude(row[f.col])
		if err != nil {
			rec.Issues = append(rec.Issues, err)
			continue
		}
		*f.dst = m
	}

	for _, f := range []struct {
		dst *[]string
		col int
	}{
		{&rec.Developers, layout.Developers},
		{&rec.Genres, layout.Genres},
		{&rec.Reviews, layout.Reviews},
	} {
		items, err := parse.ParseList(row[f.col])
		if err != nil {
			return nil, &RowError{Err: err}
		}
		*f.dst = items
	}

	return rec, nil
}

// Game builds the row stored for a new game.
func (r *Record) Game() *models.Game {
	return &models.Game{
		GameID:          r.ID,
		Title:           r.Title,
		ReleaseDate:     r.ReleaseDate,
		Rating:          r.Rating.FloatPtr(),
		TimesListed:     r.TimesListed.IntPtr(),
		NumberOfReviews: r.ReviewCount.IntPtr(),
		Summary:         r.Summary,
		Plays:           r.Plays.IntPtr(),
		Playing:         r.Playing.IntPtr(),
		Backlogs:        r.Backlogs.IntPtr(),
		Wishlist:        r.Wishlist.IntPtr(),
	}
}
