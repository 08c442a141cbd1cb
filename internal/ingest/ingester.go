// Package ingest loads a games dataset into the normalized schema in a
// single all-or-nothing pass.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"popularvideogames/backend/internal/logger"
	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/store"
)

// ErrRunInProgress is returned when Run is called while another run holds
// the ingester.
var ErrRunInProgress = errors.New("an ingestion run is already in progress")

// Stats are the counters of one pass. Read == Inserted + Skipped() always.
type Stats struct {
	RunID      uuid.UUID `json:"run_id"`
	Read       int       `json:"rows_read"`
	Inserted   int       `json:"rows_inserted"`
	Duplicates int       `json:"rows_duplicate"`
	Rejected   int       `json:"rows_rejected"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Skipped counts rows that did not create a game.
func (s Stats) Skipped() int {
	return s.Duplicates + s.Rejected
}

// Progress is published to the observer while a run advances.
type Progress struct {
	RunID      string `json:"run_id"`
	Stage      string `json:"stage"`
	Read       int    `json:"rows_read"`
	Inserted   int    `json:"rows_inserted"`
	Duplicates int    `json:"rows_duplicate"`
	Rejected   int    `json:"rows_rejected"`
	Error      string `json:"error,omitempty"`
}

const (
	StageRunning   = "running"
	StageCommitted = "committed"
	StageFailed    = "failed"
)

type Observer interface {
	Observe(Progress)
}

type ObserverFunc func(Progress)

func (f ObserverFunc) Observe(p Progress) { f(p) }

type Option func(*Ingester)

// WithObserver publishes progress every `every` rows and once at the end.
func WithObserver(o Observer, every int) Option {
	return func(i *Ingester) {
		i.observer = o
		if every > 0 {
			i.progressEvery = every
		}
	}
}

// Ingester drives ingestion passes. Only one pass runs at a time.
type Ingester struct {
	runner        TxRunner
	log           *logger.Logger
	observer      Observer
	progressEvery int
	mu            sync.Mutex
}

func New(runner TxRunner, baseLog *logger.Logger, opts ...Option) *Ingester {
	i := &Ingester{
		runner:        runner,
		log:           baseLog.With("component", "Ingester"),
		progressEvery: 500,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run ingests every row of src inside one transaction. On error nothing from
// this run is kept and the returned Stats are zero.
func (i *Ingester) Run(ctx context.Context, src Source, layout Layout) (Stats, error) {
	if !i.mu.TryLock() {
		return Stats{}, ErrRunInProgress
	}
	defer i.mu.Unlock()

	stats := Stats{RunID: uuid.New(), StartedAt: time.Now().UTC()}
	log := i.log.With("run_id", stats.RunID.String(), "source", src.Name())
	log.Info("Starting ingestion", "layout", layout.Name)

	err := i.runner.InTx(ctx, func(tx Store) error {
		p := &pass{
			ctx:      ctx,
			tx:       tx,
			log:      log,
			layout:   layout,
			resolver: NewResolver(tx),
			stats:    &stats,
			seen:     make(map[string]bool),
		}
		if err := p.seedTitles(); err != nil {
			return err
		}
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := src.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				stats.Read++
				stats.Rejected++
				log.Warn("Rejected unreadable row", "row", stats.Read, "error", rowErr)
				continue
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", src.Name(), err)
			}

			stats.Read++
			if err := p.ingest(row); err != nil {
				return fmt.Errorf("row %d: %w", stats.Read, err)
			}
			if i.observer != nil && stats.Read%i.progressEvery == 0 {
				i.observer.Observe(progressOf(stats, StageRunning, nil))
			}
		}

		stats.FinishedAt = time.Now().UTC()
		return tx.RecordRun(ctx, &models.IngestionRun{
			ID:         stats.RunID,
			Source:     src.Name(),
			Layout:     layout.Name,
			RowsRead:   stats.Read,
			Inserted:   stats.Inserted,
			Duplicates: stats.Duplicates,
			Rejected:   stats.Rejected,
			StartedAt:  stats.StartedAt,
			FinishedAt: stats.FinishedAt,
		})
	})
	if err != nil {
		log.Error("Ingestion aborted, nothing committed", "error", err, "rows_read", stats.Read)
		if i.observer != nil {
			i.observer.Observe(progressOf(stats, StageFailed, err))
		}
		return Stats{}, fmt.Errorf("ingestion aborted: %w", err)
	}

	log.Info("Ingestion committed",
		"rows_read", stats.Read,
		"rows_inserted", stats.Inserted,
		"rows_skipped", stats.Skipped(),
		"rows_duplicate", stats.Duplicates,
		"rows_rejected", stats.Rejected,
	)
	if i.observer != nil {
		i.observer.Observe(progressOf(stats, StageCommitted, nil))
	}
	return stats, nil
}

func progressOf(s Stats, stage string, err error) Progress {
	p := Progress{
		RunID:      s.RunID.String(),
		Stage:      stage,
		Read:       s.Read,
		Inserted:   s.Inserted,
		Duplicates: s.Duplicates,
		Rejected:   s.Rejected,
	}
	if err != nil {
		p.Error = err.Error()
	}
	return p
}

// pass holds the state of one run inside its transaction.
type pass struct {
	ctx      context.Context
	tx       Store
	log      *logger.Logger
	layout   Layout
	resolver *Resolver
	stats    *Stats

	// Titles known to be stored. Only gates the resolver lookup; the
	// resolver still compares summaries against storage.
	seen map[string]bool
}

// seedTitles marks titles stored by earlier runs as seen, so that re-running
// a dataset resolves its rows as duplicates instead of colliding on ids.
func (p *pass) seedTitles() error {
	titles, err := p.tx.Titles(p.ctx)
	if err != nil {
		return fmt.Errorf("load stored titles: %w", err)
	}
	for _, t := range titles {
		p.seen[t] = true
	}
	return nil
}

func (p *pass) ingest(row []string) error {
	rec, err := Normalize(row, p.layout)
	if err != nil {
		p.stats.Rejected++
		p.log.Warn("Rejected row", "row", p.stats.Read, "error", err)
		return nil
	}
	for _, issue := range rec.Issues {
		p.log.Debug("Field stored as absent", "row", p.stats.Read, "game_id", rec.ID, "error", issue)
	}

	if p.seen[rec.Title] {
		gameID, found, err := p.resolver.Resolve(p.ctx, rec.Title, rec.Summary)
		if err != nil {
			return err
		}
		if found {
			if err := p.addReviews(gameID, rec.Reviews); err != nil {
				return err
			}
			p.stats.Duplicates++
			p.log.Debug("Duplicate row merged", "row", p.stats.Read, "game_id", rec.ID, "resolved_game_id", gameID)
			return nil
		}
	}

	if err := p.insertGame(rec); err != nil {
		return err
	}
	p.seen[rec.Title] = true
	p.stats.Inserted++
	return nil
}

func (p *pass) insertGame(rec *Record) error {
	if err := p.tx.InsertGame(p.ctx, rec.Game()); err != nil {
		return fmt.Errorf("insert game %d %q: %w", rec.ID, rec.Title, err)
	}

	for _, name := range distinctNames(rec.Developers) {
		if err := ignoreExisting(p.tx.InsertDeveloper(p.ctx, name)); err != nil {
			return fmt.Errorf("insert developer %q: %w", name, err)
		}
		if err := p.tx.RelateDeveloper(p.ctx, name, rec.ID); err != nil {
			return fmt.Errorf("relate developer %q to game %d: %w", name, rec.ID, err)
		}
	}

	for _, name := range distinctNames(rec.Genres) {
		if err := ignoreExisting(p.tx.InsertGenre(p.ctx, name)); err != nil {
			return fmt.Errorf("insert genre %q: %w", name, err)
		}
		if err := p.tx.RelateGenre(p.ctx, rec.ID, name); err != nil {
			return fmt.Errorf("relate game %d to genre %q: %w", rec.ID, name, err)
		}
	}

	return p.addReviews(rec.ID, rec.Reviews)
}

// addReviews attaches reviews to gameID, skipping content the game already has.
func (p *pass) addReviews(gameID int64, reviews []string) error {
	for _, content := range reviews {
		if err := ignoreExisting(p.tx.InsertReview(p.ctx, content, gameID)); err != nil {
			return fmt.Errorf("insert review for game %d: %w", gameID, err)
		}
	}
	return nil
}

func ignoreExisting(err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// distinctNames drops blank and repeated names, keeping first-seen order.
func distinctNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
