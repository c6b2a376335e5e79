// Package analyze runs the full export analysis pipeline: classify raw
// documents, merge conversation fragments, and compute the three analytics
// reports as one atomic snapshot
package analyze

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"instalens/internal/adapters/ingest/extract"
	"instalens/internal/adapters/ingest/instaexport"
	"instalens/internal/core/analytics"
	"instalens/internal/core/records"
	"instalens/internal/core/threadmerge"
	perr "instalens/internal/platform/errors"
	"instalens/internal/platform/logger"
)

// Config tunes a Service
type Config struct {
	// Phrases are the literal phrases counted per sender in the
	// messaging report; nil uses the defaults
	Phrases []string
}

// Snapshot is one complete analysis result. A run either produces a full
// snapshot or fails; partial results are never exposed
type Snapshot struct {
	RunID         string                    `json:"runId"`
	GeneratedAtMs int64                     `json:"generatedAtMs"`
	Documents     int                       `json:"documents"`
	Recognized    int                       `json:"recognized"`
	Messaging     *analytics.Report         `json:"messaging"`
	Extras        *analytics.ExtrasReport   `json:"extras"`
	Security      *analytics.SecurityReport `json:"security"`
}

// Service owns the pipeline and remembers the most recent snapshot
type Service struct {
	cfg    Config
	latest atomic.Pointer[Snapshot]
}

// New constructs an analyze service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Run processes a batch of export documents into a snapshot.
// Documents that fail to parse or match no known schema are skipped; the run
// fails only when no conversation data was recovered at all
func (s *Service) Run(ctx context.Context, docs []instaexport.Document) (*Snapshot, error) {
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	batch := &records.Batch{}
	recognized := 0
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		schema, recs := extract.FromDocument(d.Raw)
		if schema == extract.SchemaUnknown {
			log.Debug().Str("file", d.Name).Msg("unrecognized document, skipping")
			continue
		}
		recognized++
		for _, rec := range recs {
			batch.Add(rec)
		}
	}

	threads := threadmerge.Merge(batch.Threads)
	if len(threads) == 0 {
		return nil, perr.ErrNoData
	}

	phrases := s.cfg.Phrases
	if phrases == nil {
		phrases = analytics.DefaultPhrases
	}

	snap := &Snapshot{
		RunID:         runID,
		GeneratedAtMs: time.Now().UnixMilli(),
		Documents:     len(docs),
		Recognized:    recognized,
		Messaging:     analytics.ComputeWith(threads, analytics.Options{Phrases: phrases}),
		Extras:        analytics.ComputeExtras(batch.Saves, batch.Comments, batch.Topics),
		Security:      analytics.ComputeSecurity(batch),
	}
	s.latest.Store(snap)

	log.Info().
		Int("documents", len(docs)).
		Int("recognized", recognized).
		Int("threads", len(threads)).
		Int("messages", snap.Messaging.Overview.TotalMessages).
		Msg("analysis run complete")
	return snap, nil
}

// Latest returns the most recent snapshot, or nil before the first run
func (s *Service) Latest() *Snapshot {
	return s.latest.Load()
}
