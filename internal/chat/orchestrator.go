package chat

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/talent"
	"github.com/talentwire/scout/internal/util"
)

const (
	defaultSearchText = "Here are the search results:"
	defaultRefineText = "Here are the refined results:"
	maxLoggedQuery    = 120
)

// SearchBackend is the slice of the backend API the orchestrator needs.
type SearchBackend interface {
	Search(req *talent.SearchRequest) (*talent.SearchResponse, error)
	Refine(req *talent.RefineRequest) (*talent.SearchResponse, error)
}

// Outcome is the result of one successful turn.
type Outcome struct {
	Response *talent.SearchResponse
	// Refined is true when the turn went through the refinement path.
	Refined bool
}

// Orchestrator routes each user utterance to the search or refinement
// endpoint and keeps the conversation log in step. The first turn of a fresh
// conversation always searches; once a session id is established every later
// turn refines, regardless of topic drift. Turns are expected to be
// serialized by a single input surface; overlapping Submit calls are a
// caller-level concern.
type Orchestrator struct {
	backend  SearchBackend
	sessions *SessionStore
	log      *Log
	logger   *zap.Logger
	topK     int

	searching atomic.Bool
	now       func() time.Time
}

func NewOrchestrator(backend SearchBackend, sessions *SessionStore, log *Log, logger *zap.Logger, topK int) *Orchestrator {
	if topK <= 0 {
		topK = talent.DefaultTopK
	}

	return &Orchestrator{
		backend:  backend,
		sessions: sessions,
		log:      log,
		logger:   logger,
		topK:     topK,
		now:      time.Now,
	}
}

// Searching reports whether a submission is in flight.
func (o *Orchestrator) Searching() bool {
	return o.searching.Load()
}

// Submit runs one turn. The query is appended to the log before the network
// call so the user's input is visible immediately; a failed call appends a
// synthesized error response and is terminal for this turn (no retry).
func (o *Orchestrator) Submit(utterance string) (*Outcome, error) {
	o.searching.Store(true)
	defer o.searching.Store(false)

	if err := o.log.Append(NewQuery(utterance, o.now())); err != nil {
		o.logger.Warn("persisting query failed", zap.Error(err))
	}

	refine := o.log.Len() > 1 || o.sessions.Established()

	o.logger.Debug("submitting turn",
		zap.String("query", util.TruncateForLog(utterance, maxLoggedQuery)),
		zap.Bool("refine", refine),
	)

	resp, err := o.exchange(utterance, refine)
	if err != nil {
		if appendErr := o.log.Append(NewResponse("Error: "+err.Error(), "", nil, o.now())); appendErr != nil {
			o.logger.Warn("persisting error response failed", zap.Error(appendErr))
		}

		return nil, err
	}

	o.sessions.Adopt(resp.SessionID)

	content := resp.Message
	if content == "" {
		content = defaultSearchText
		if refine {
			content = defaultRefineText
		}
	}

	if err := o.log.Append(NewResponse(content, resp.GeneratedSummary, resp.Results, o.now())); err != nil {
		o.logger.Warn("persisting response failed", zap.Error(err))
	}

	o.logger.Info("turn completed",
		zap.String("session_id", o.sessions.Current()),
		zap.Bool("refined", refine),
		zap.Int("results", len(resp.Results)),
	)

	return &Outcome{Response: resp, Refined: refine}, nil
}

func (o *Orchestrator) exchange(utterance string, refine bool) (*talent.SearchResponse, error) {
	if refine {
		return o.backend.Refine(&talent.RefineRequest{
			RefinementQuery: utterance,
			SessionID:       o.sessions.Current(),
			TopK:            o.topK,
		})
	}

	return o.backend.Search(&talent.SearchRequest{
		Query:     utterance,
		TopK:      o.topK,
		SessionID: o.sessions.Current(),
	})
}
