// Package report holds the fixed catalog of read-only queries over the
// loaded dataset and renders their results.
package report

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownReport = errors.New("unknown report")

type Category string

const (
	CategoryDatabase   Category = "database"
	CategoryVideogames Category = "videogames"
	CategoryDevelopers Category = "developers"
	CategoryGenres     Category = "genres"
)

// Categories returns the report categories in menu order.
func Categories() []Category {
	return []Category{CategoryDatabase, CategoryVideogames, CategoryDevelopers, CategoryGenres}
}

// ID identifies one report of the catalog.
type ID int

const (
	RowCounts ID = iota + 1
	ListTables
	TableColumns
	Indexes
	DatabaseSize
	SampleGames
	SampleDevelopers
	SampleGenres

	GamesPerDecade
	TopRated
	MostReviewed
	MostPlayed
	MostWishlisted
	MostPlaying
	GamesWithoutReviews
	GamesWithoutRating
	GamesWithoutReleaseDate

	DevelopersByGames
	DevelopersByRating
	DevelopersByReviews
	VersatileDevelopers

	AllGenres
	GamesPerGenre
	RatingPerGenre
	SmallestGenres
)

// Definition describes a report: where it is listed and how it is computed.
type Definition struct {
	ID       ID       `json:"-" yaml:"-"`
	Category Category `json:"category" yaml:"category"`
	Slug     string   `json:"slug" yaml:"slug"`
	Title    string   `json:"title" yaml:"title"`
	Columns  []string `json:"columns" yaml:"columns"`

	run runFunc
}

func (d Definition) String() string {
	return fmt.Sprintf("%s/%s", d.Category, d.Slug)
}

var catalog = []Definition{
	{ID: RowCounts, Category: CategoryDatabase, Slug: "row-counts", Title: "Number of rows per table",
		Columns: []string{"table_name", "table_rows"}, run: rowCounts},
	{ID: ListTables, Category: CategoryDatabase, Slug: "tables", Title: "List tables in the database",
		Columns: []string{"table_name"}, run: listTables},
	{ID: TableColumns, Category: CategoryDatabase, Slug: "columns", Title: "Columns in each table",
		Columns: []string{"table_name", "columns"}, run: tableColumns},
	{ID: Indexes, Category: CategoryDatabase, Slug: "indexes", Title: "Indexes information",
		Columns: []string{"table_name", "index_name", "column_name"}, run: indexes},
	{ID: DatabaseSize, Category: CategoryDatabase, Slug: "size", Title: "Total database size",
		Columns: []string{"database_size_mb"}, run: databaseSize},
	{ID: SampleGames, Category: CategoryDatabase, Slug: "videogames", Title: "Show the videogames table",
		Columns: []string{"game_id", "game_title", "release_date", "rating", "times_listed", "number_of_reviews",
			"truncated_summary", "plays", "playing", "backlogs", "wishlist"},
		run: sqlQuery(`
			SELECT game_id, game_title, release_date, rating, times_listed, number_of_reviews,
				SUBSTR(summary, 1, 30), plays, playing, backlogs, wishlist
			FROM videogames
			ORDER BY game_id
			LIMIT 10`)},
	{ID: SampleDevelopers, Category: CategoryDatabase, Slug: "developers", Title: "Show the developers table",
		Columns: []string{"name"},
		run:     sqlQuery(`SELECT name FROM developers ORDER BY name LIMIT 10`)},
	{ID: SampleGenres, Category: CategoryDatabase, Slug: "genres", Title: "Show the genres table",
		Columns: []string{"name"},
		run:     sqlQuery(`SELECT name FROM genres ORDER BY name LIMIT 10`)},

	{ID: GamesPerDecade, Category: CategoryVideogames, Slug: "per-decade", Title: "Number of videogames per decade",
		Columns: []string{"decade", "number_of_games"}, run: gamesPerDecade},
	{ID: TopRated, Category: CategoryVideogames, Slug: "top-rated", Title: "Top 10 videogames by rating",
		Columns: []string{"game_title", "rating"}, run: topGamesBy("rating")},
	{ID: MostReviewed, Category: CategoryVideogames, Slug: "most-reviewed",
		Title:   "Top 10 most reviewed videogames (by registered reviews)",
		Columns: []string{"game_title", "review_count"},
		run: sqlQuery(`
			SELECT v.game_title, COUNT(r.id) AS review_count
			FROM videogames v
			JOIN reviews r ON v.game_id = r.game_id
			GROUP BY v.game_id, v.game_title
			ORDER BY review_count DESC, v.game_id
			LIMIT 10`)},
	{ID: MostPlayed, Category: CategoryVideogames, Slug: "most-played", Title: "Top 10 most played videogames",
		Columns: []string{"game_title", "plays"}, run: topGamesBy("plays")},
	{ID: MostWishlisted, Category: CategoryVideogames, Slug: "most-wishlisted", Title: "Top 10 most wishlisted videogames",
		Columns: []string{"game_title", "wishlist"}, run: topGamesBy("wishlist")},
	{ID: MostPlaying, Category: CategoryVideogames, Slug: "most-playing", Title: "Top 10 videogames by active players",
		Columns: []string{"game_title", "playing"}, run: topGamesBy("playing")},
	{ID: GamesWithoutReviews, Category: CategoryVideogames, Slug: "without-reviews", Title: "Videogames without reviews",
		Columns: []string{"game_title"},
		run: sqlQuery(`
			SELECT v.game_title
			FROM videogames v
			WHERE NOT EXISTS (SELECT 1 FROM reviews r WHERE r.game_id = v.game_id)
			ORDER BY v.game_id`)},
	{ID: GamesWithoutRating, Category: CategoryVideogames, Slug: "without-rating", Title: "Videogames without a rating number",
		Columns: []string{"game_title"},
		run:     sqlQuery(`SELECT game_title FROM videogames WHERE rating IS NULL ORDER BY game_id`)},
	{ID: GamesWithoutReleaseDate, Category: CategoryVideogames, Slug: "without-release-date",
		Title:   "Videogames without an announced release date",
		Columns: []string{"game_title"},
		run:     sqlQuery(`SELECT game_title FROM videogames WHERE release_date IS NULL ORDER BY game_id`)},

	{ID: DevelopersByGames, Category: CategoryDevelopers, Slug: "by-games", Title: "Top 10 developers by number of developed games",
		Columns: []string{"developer", "num_of_games"},
		run: sqlQuery(`
			SELECT developer, COUNT(*) AS num_of_games
			FROM developed_by
			GROUP BY developer
			ORDER BY num_of_games DESC, developer
			LIMIT 10`)},
	{ID: DevelopersByRating, Category: CategoryDevelopers, Slug: "by-rating",
		Title:   "Top 10 developers by the average rating of their games",
		Columns: []string{"developer", "avg_rating"},
		run: sqlQuery(`
			SELECT d.developer, ROUND(AVG(v.rating), 2) AS avg_rating
			FROM developed_by d
			JOIN videogames v ON d.game_id = v.game_id
			WHERE v.rating IS NOT NULL
			GROUP BY d.developer
			ORDER BY avg_rating DESC, d.developer
			LIMIT 10`)},
	{ID: DevelopersByReviews, Category: CategoryDevelopers, Slug: "by-reviews", Title: "Top 10 developers with most reviews",
		Columns: []string{"developer", "total_reviews"},
		run: sqlQuery(`
			SELECT d.developer, COUNT(r.id) AS total_reviews
			FROM developed_by d
			JOIN reviews r ON d.game_id = r.game_id
			GROUP BY d.developer
			ORDER BY total_reviews DESC, d.developer
			LIMIT 10`)},
	{ID: VersatileDevelopers, Category: CategoryDevelopers, Slug: "versatile",
		Title:   fmt.Sprintf("Developers who have developed for more than %d genres", versatileGenres),
		Columns: []string{"developer", "num_genres"},
		run: sqlQuery(`
			SELECT d.developer, COUNT(DISTINCT g.genre_name) AS num_genres
			FROM developed_by d
			JOIN genre_of g ON d.game_id = g.game_id
			GROUP BY d.developer
			HAVING COUNT(DISTINCT g.genre_name) > ?
			ORDER BY num_genres DESC, d.developer`, versatileGenres)},

	{ID: AllGenres, Category: CategoryGenres, Slug: "all", Title: "List of all genres",
		Columns: []string{"name"},
		run:     sqlQuery(`SELECT name FROM genres ORDER BY name`)},
	{ID: GamesPerGenre, Category: CategoryGenres, Slug: "games", Title: "Number of videogames per genre",
		Columns: []string{"genre_name", "num_of_games"},
		run: sqlQuery(`
			SELECT genre_name, COUNT(*) AS num_of_games
			FROM genre_of
			GROUP BY genre_name
			ORDER BY num_of_games DESC, genre_name`)},
	{ID: RatingPerGenre, Category: CategoryGenres, Slug: "rating", Title: "Average rating of games per genre",
		Columns: []string{"genre_name", "avg_rating"},
		run: sqlQuery(`
			SELECT g.genre_name, ROUND(AVG(v.rating), 2) AS avg_rating
			FROM genre_of g
			JOIN videogames v ON g.game_id = v.game_id
			WHERE v.rating IS NOT NULL
			GROUP BY g.genre_name
			ORDER BY avg_rating DESC, g.genre_name`)},
	{ID: SmallestGenres, Category: CategoryGenres, Slug: "fewest-games", Title: "Genres with the fewest videogames",
		Columns: []string{"genre_name", "num_of_games"},
		run: sqlQuery(`
			SELECT genre_name, COUNT(*) AS num_of_games
			FROM genre_of
			GROUP BY genre_name
			ORDER BY num_of_games ASC, genre_name
			LIMIT 5`)},
}

const versatileGenres = 10

// All returns every report in catalog order.
func All() []Definition {
	return append([]Definition(nil), catalog...)
}

// InCategory returns the reports of c sorted by title.
func InCategory(c Category) []Definition {
	var out []Definition
	for _, d := range catalog {
		if d.Category == c {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// Get returns the definition of id.
func Get(id ID) (Definition, error) {
	for _, d := range catalog {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: id %d", ErrUnknownReport, id)
}

// Lookup finds a report by category and slug.
func Lookup(category, slug string) (Definition, error) {
	for _, d := range catalog {
		if string(d.Category) == category && d.Slug == slug {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s/%s", ErrUnknownReport, category, slug)
}
