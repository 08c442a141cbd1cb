package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"popularvideogames/backend/internal/auth"
	"popularvideogames/backend/internal/hub"
	"popularvideogames/backend/internal/ingest"
	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/parse"
	"popularvideogames/backend/internal/report"
	"popularvideogames/backend/internal/store"
	"popularvideogames/backend/internal/testutil"
)

const adminKey = "correct horse battery staple"

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	events *hub.Hub
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := auth.HashAdminKey(adminKey)
	require.NoError(t, err)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	events := hub.New(log)
	ing := ingest.New(ingest.GormRunner(store.New(db, log)), log, ingest.WithObserver(ProgressPublisher(events), 1))
	h := New(db, ing, events, log, Options{JWTSecret: []byte("test-secret"), AdminKeyHash: hash})

	r := gin.New()
	h.Register(r)
	return &fixture{db: db, router: r, events: events}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (f *fixture) token(t *testing.T) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"key":"`+adminKey+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := f.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func row(id, title, summary string, devs, genres, reviews []string) []string {
	return []string{
		id, title, parse.FormatList(devs), "Feb 25, 2022", "4.5", "3.2K", "1.1K",
		parse.FormatList(genres), summary, parse.FormatList(reviews), "17K", "457", "4.6K", "4.8K",
	}
}

func csvFile(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write([]string{"id", "Title", "Team", "Release Date", "Rating", "Times Listed",
		"Number of Reviews", "Genres", "Summary", "Reviews", "Plays", "Playing", "Backlogs", "Wishlist"}))
	require.NoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

func (f *fixture) upload(t *testing.T, token string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "games.csv")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("layout", "standard"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/ingest", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return f.do(t, req)
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	w := f.upload(t, f.token(t), csvFile(t,
		row("1", "Elden Ring", "Rise, Tarnished.", []string{"FromSoftware", "Bandai Namco"}, []string{"RPG", "Adventure"}, []string{"vast", "hard"}),
		row("2", "Elden Ring", "Rise, Tarnished.", []string{"FromSoftware"}, []string{"RPG"}, []string{"hard", "brilliant"}),
		row("3", "Hades", "Defy the god of the dead.", []string{"Supergiant Games"}, []string{"RPG", "Indie"}, nil),
		row("4", "Celeste", "Climb the mountain.", []string{"Maddy Makes Games"}, []string{"Platform", "Indie"}, []string{"tight"}),
	))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPing(t *testing.T) {
	f := setup(t)
	w := f.get(t, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestIngestEndpoint(t *testing.T) {
	f := setup(t)
	sub := f.events.Subscribe(hub.TopicIngest, 16)

	w := f.upload(t, f.token(t), csvFile(t,
		row("1", "Hades", "s", nil, nil, []string{"a"}),
		row("2", "Hades", "s", nil, nil, []string{"b"}),
		row("x", "Broken", "s", nil, nil, nil),
	))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[IngestResponse](t, w)
	assert.Equal(t, 3, resp.Read)
	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, 2, resp.Skipped)
	assert.Equal(t, int64(2), testutil.Count(t, f.db, &models.Review{}))

	require.NotEmpty(t, sub)
	var last hub.Event
	for len(sub) > 0 {
		require.NoError(t, json.Unmarshal(<-sub, &last))
	}
	assert.Equal(t, "ingest."+ingest.StageCommitted, last.Type)

	runs := decode[PaginatedResponse[models.IngestionRun]](t, f.do(t, authed(http.MethodGet, "/api/v1/admin/ingest/runs", f.token(t))))
	require.Len(t, runs.Data, 1)
	assert.Equal(t, "games.csv", runs.Data[0].Source)
	assert.Equal(t, 1, runs.Data[0].Inserted)
}

func TestIngestConflictRollsBack(t *testing.T) {
	f := setup(t)
	w := f.upload(t, f.token(t), csvFile(t,
		row("1", "Hades", "s", nil, nil, nil),
		row("1", "Bastion", "other", nil, nil, nil),
	))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Zero(t, testutil.Count(t, f.db, &models.Game{}))
}

func TestIngestRequiresAdmin(t *testing.T) {
	f := setup(t)
	assert.Equal(t, http.StatusUnauthorized, f.upload(t, "", csvFile(t)).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"key":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, f.do(t, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/ingest", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t))
	assert.Equal(t, http.StatusBadRequest, f.do(t, req).Code)
}

func authed(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestGetGames(t *testing.T) {
	f := setup(t)
	f.seed(t)

	all := decode[PaginatedGameResponse](t, f.get(t, "/api/v1/games"))
	assert.Equal(t, int64(3), all.Meta.TotalItems)
	require.Len(t, all.Data, 3)
	assert.Equal(t, "Elden Ring", all.Data[0].Title)
	require.NotNil(t, all.Data[0].ReleaseDate)
	assert.Equal(t, "2022-02-25", *all.Data[0].ReleaseDate)

	indie := decode[PaginatedGameResponse](t, f.get(t, "/api/v1/games?genre=Indie"))
	assert.Equal(t, int64(2), indie.Meta.TotalItems)

	from := decode[PaginatedGameResponse](t, f.get(t, "/api/v1/games?developer=FromSoftware&q=elden"))
	require.Len(t, from.Data, 1)
	assert.Equal(t, int64(1), from.Data[0].ID)

	paged := decode[PaginatedGameResponse](t, f.get(t, "/api/v1/games?limit=2&page=2"))
	assert.Equal(t, 2, paged.Meta.TotalPages)
	require.Len(t, paged.Data, 1)
	assert.Equal(t, "Celeste", paged.Data[0].Title)

	none := decode[PaginatedGameResponse](t, f.get(t, "/api/v1/games?genre=Shooter"))
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)
}

func TestGetGameByID(t *testing.T) {
	f := setup(t)
	f.seed(t)

	w := f.get(t, "/api/v1/games/1")
	require.Equal(t, http.StatusOK, w.Code)
	game := decode[GameDetailResponse](t, w)
	assert.Equal(t, []string{"Bandai Namco", "FromSoftware"}, game.Developers)
	assert.Equal(t, []string{"Adventure", "RPG"}, game.Genres)
	assert.Equal(t, int64(3), game.ReviewCount)

	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/v1/games/2").Code)
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/v1/games/abc").Code)
}

func TestGetGameReviews(t *testing.T) {
	f := setup(t)
	f.seed(t)

	reviews := decode[PaginatedReviewResponse](t, f.get(t, "/api/v1/games/1/reviews"))
	var contents []string
	for _, r := range reviews.Data {
		contents = append(contents, r.Content)
	}
	assert.Equal(t, []string{"vast", "hard", "brilliant"}, contents)

	empty := decode[PaginatedReviewResponse](t, f.get(t, "/api/v1/games/3/reviews"))
	assert.Empty(t, empty.Data)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/v1/games/99/reviews").Code)
}

func TestReports(t *testing.T) {
	f := setup(t)
	f.seed(t)

	catalog := decode[[]ReportCategoryResponse](t, f.get(t, "/api/v1/reports"))
	require.Len(t, catalog, len(report.Categories()))
	assert.Equal(t, report.CategoryDatabase, catalog[0].Category)

	w := f.get(t, "/api/v1/reports/genres/games")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	table := decode[report.Table](t, w)
	assert.Equal(t, []string{"genre_name", "num_of_games"}, table.Columns)
	assert.Equal(t, [][]string{{"Indie", "2"}, {"RPG", "2"}}, table.Rows[:2])

	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/v1/reports/genres/nope").Code)
}

func TestTokenExpiry(t *testing.T) {
	f := setup(t)
	resp := decode[TokenResponse](t, func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"key":"`+adminKey+`"}`))
		req.Header.Set("Content-Type", "application/json")
		return f.do(t, req)
	}())
	assert.Equal(t, int64((12 * time.Hour).Seconds()), resp.ExpiresIn)
}
