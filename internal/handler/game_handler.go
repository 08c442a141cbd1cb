package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"popularvideogames/backend/internal/models"
)

// region --- DTOs ---

type GameResponse struct {
	ID              int64    `json:"id" example:"12"`
	Title           string   `json:"title" example:"Hades"`
	ReleaseDate     *string  `json:"release_date" example:"2020-09-17"`
	Rating          *float64 `json:"rating" example:"4.3"`
	TimesListed     *int64   `json:"times_listed"`
	NumberOfReviews *int64   `json:"number_of_reviews"`
	Summary         string   `json:"summary"`
	Plays           *int64   `json:"plays"`
	Playing         *int64   `json:"playing"`
	Backlogs        *int64   `json:"backlogs"`
	Wishlist        *int64   `json:"wishlist"`
}

// GameDetailResponse adds the game's relations to GameResponse.
type GameDetailResponse struct {
	GameResponse
	Developers  []string `json:"developers"`
	Genres      []string `json:"genres"`
	ReviewCount int64    `json:"review_count"`
}

type ReviewResponse struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func newGameResponse(game models.Game) GameResponse {
	var released *string
	if game.ReleaseDate != nil {
		s := game.ReleaseDate.Format("2006-01-02")
		released = &s
	}
	return GameResponse{
		ID:              game.GameID,
		Title:           game.Title,
		ReleaseDate:     released,
		Rating:          game.Rating,
		TimesListed:     game.TimesListed,
		NumberOfReviews: game.NumberOfReviews,
		Summary:         game.Summary,
		Plays:           game.Plays,
		Playing:         game.Playing,
		Backlogs:        game.Backlogs,
		Wishlist:        game.Wishlist,
	}
}

func newReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{ID: r.ID, Content: r.Content}
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// PaginatedReviewResponse defines the structure for a paginated list of reviews.
type PaginatedReviewResponse struct {
	Data []ReviewResponse `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated list of games, with optional filtering by title, genre and developer.
// @Tags         games
// @Produce      json
// @Param        q         query     string  false  "Case-insensitive search in the title"
// @Param        genre     query     string  false  "Exact genre name"
// @Param        developer query     string  false  "Exact developer name"
// @Param        page      query     int     false  "Page number" default(1)
// @Param        limit     query     int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedGameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	page, limit := pageParams(c)

	query := h.db.WithContext(c.Request.Context()).Model(&models.Game{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(game_title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if genre := c.Query("genre"); genre != "" {
		query = query.Where("EXISTS (SELECT 1 FROM genre_of g WHERE g.game_id = videogames.game_id AND g.genre_name = ?)", genre)
	}
	if developer := c.Query("developer"); developer != "" {
		query = query.Where("EXISTS (SELECT 1 FROM developed_by d WHERE d.game_id = videogames.game_id AND d.developer = ?)", developer)
	}

	games, total, err := Paginate[models.Game](query.Order("game_id"), page, limit)
	if err != nil {
		h.log.Error("Failed to list games", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	c.JSON(http.StatusOK, mapPage(games, total, page, limit, newGameResponse))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its developers, genres and number of stored reviews.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameDetailResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var game models.Game
	if err := db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	resp := GameDetailResponse{GameResponse: newGameResponse(game), Developers: []string{}, Genres: []string{}}
	err := db.Model(&models.DevelopedBy{}).Where("game_id = ?", id).Order("developer").Pluck("developer", &resp.Developers).Error
	if err == nil {
		err = db.Model(&models.GenreOf{}).Where("game_id = ?", id).Order("genre_name").Pluck("genre_name", &resp.Genres).Error
	}
	if err == nil {
		err = db.Model(&models.Review{}).Where("game_id = ?", id).Count(&resp.ReviewCount).Error
	}
	if err != nil {
		h.log.Error("Failed to load game relations", "game_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetGameReviews godoc
// @Summary      Get the reviews of a game
// @Description  Retrieves a paginated list of the stored reviews of a game, in insertion order.
// @Tags         games
// @Produce      json
// @Param        id    path  int true  "Game ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} PaginatedReviewResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/reviews [get]
func (h *Handler) GetGameReviews(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	db := h.db.WithContext(c.Request.Context())

	var exists int64
	if err := db.Model(&models.Game{}).Where("game_id = ?", id).Count(&exists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	reviews, total, err := Paginate[models.Review](db.Where("game_id = ?", id).Order("id"), page, limit)
	if err != nil {
		h.log.Error("Failed to list reviews", "game_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	c.JSON(http.StatusOK, mapPage(reviews, total, page, limit, newReviewResponse))
}
