package ingest

import "fmt"

// Columns is the number of cells in every dataset row.
const Columns = 14

// Layout maps each field to its column position.
type Layout struct {
	Name        string
	ID          int
	Title       int
	Developers  int
	ReleaseDate int
	Rating      int
	TimesListed int
	ReviewCount int
	Genres      int
	Summary     int
	Reviews     int
	Plays       int
	Playing     int
	Backlogs    int
	Wishlist    int
}

// DefaultLayout: id, title, developers, release date, rating, times listed,
// review count, genres, summary, reviews, plays, playing, backlogs, wishlist.
var DefaultLayout = Layout{
	Name:        "standard",
	ID:          0,
	Title:       1,
	Developers:  2,
	ReleaseDate: 3,
	Rating:      4,
	TimesListed: 5,
	ReviewCount: 6,
	Genres:      7,
	Summary:     8,
	Reviews:     9,
	Plays:       10,
	Playing:     11,
	Backlogs:    12,
	Wishlist:    13,
}

// SourceLayout matches the published games.csv, where the release date
// column precedes the team column.
var SourceLayout = func() Layout {
	l := DefaultLayout
	l.Name = "source"
	l.ReleaseDate, l.Developers = 2, 3
	return l
}()

// LayoutByName resolves "standard" (or "") and "source".
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", DefaultLayout.Name:
		return DefaultLayout, nil
	case SourceLayout.Name:
		return SourceLayout, nil
	}
	return Layout{}, fmt.Errorf("unknown dataset layout %q", name)
}
