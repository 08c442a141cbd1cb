package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"popularvideogames/backend/internal/hub"
	"popularvideogames/backend/internal/ingest"
	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/store"
)

// IngestResponse reports a committed ingestion run.
type IngestResponse struct {
	ingest.Stats
	Skipped int `json:"rows_skipped"`
}

// PaginatedRunResponse defines the structure for a paginated list of ingestion runs.
type PaginatedRunResponse struct {
	Data []models.IngestionRun `json:"data"`
	Meta PaginationMeta        `json:"meta"`
}

// ProgressPublisher broadcasts ingestion progress on the ingest topic.
func ProgressPublisher(events *hub.Hub) ingest.Observer {
	return ingest.ObserverFunc(func(p ingest.Progress) {
		events.Broadcast(hub.TopicIngest, hub.Event{Type: "ingest." + p.Stage, Payload: p})
	})
}

// Ingest godoc
// @Summary      Ingest a dataset
// @Description  Loads an uploaded CSV dataset in one transaction. Nothing is kept if the run fails.
// @Tags         admin-ingest
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData file   true  "Dataset CSV with a header row"
// @Param        layout formData string false "Column layout" Enums(standard, source)
// @Success      200 {object} IngestResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "A run is in progress or the dataset conflicts with stored games"
// @Failure      500 {object} ErrorResponse
// @Router       /admin/ingest [post]
func (h *Handler) Ingest(c *gin.Context) {
	layout := h.opts.Layout
	if name := c.PostForm("layout"); name != "" {
		l, err := ingest.LayoutByName(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		layout = l
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A dataset file is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read the uploaded file"})
		return
	}
	defer f.Close()

	stats, err := h.ingester.Run(c.Request.Context(), ingest.NewCSVSource(f, header.Filename), layout)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, IngestResponse{Stats: stats, Skipped: stats.Skipped()})
	case errors.Is(err, ingest.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAlreadyExists), errors.Is(err, ingest.ErrAmbiguousGame):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// IngestEvents godoc
// @Summary      Stream ingestion progress
// @Description  Server-sent events with the progress of running ingestions.
// @Tags         admin-ingest
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "event stream"
// @Router       /admin/ingest/events [get]
func (h *Handler) IngestEvents(c *gin.Context) {
	client := h.hub.Subscribe(hub.TopicIngest, 16)
	defer h.hub.Unsubscribe(hub.TopicIngest, client)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("progress", string(msg))
			return true
		}
	})
}

// GetIngestionRuns godoc
// @Summary      List ingestion runs
// @Description  Committed ingestion runs, most recent first.
// @Tags         admin-ingest
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} PaginatedRunResponse
// @Router       /admin/ingest/runs [get]
func (h *Handler) GetIngestionRuns(c *gin.Context) {
	page, limit := pageParams(c)

	runs, total, err := Paginate[models.IngestionRun](h.db.WithContext(c.Request.Context()).Order("finished_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingestion runs"})
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(runs, total, page, limit))
}
