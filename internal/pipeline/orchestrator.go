// internal/pipeline/orchestrator.go

// Package pipeline drives one chat request through search, enrichment,
// context building, streamed answer generation and follow-up derivation,
// reporting progress on a per-request event stream.
package pipeline

import (
	"context"
	"errors"
	"time"

	commonerrors "answer-engine/internal/common/errors"
	"answer-engine/internal/common/logger"
	"answer-engine/internal/common/metrics"
	"answer-engine/internal/common/observability"
	"answer-engine/internal/llm"
	"answer-engine/internal/search"
)

// Searcher runs the fan-out category search for one query.
type Searcher interface {
	Run(ctx context.Context, query string) (*search.Bundle, error)
}

// Enricher augments a bounded prefix of web sources with full content.
type Enricher interface {
	Enrich(ctx context.Context, sources []search.Source)
}

// Generator is the black-box text generation service.
type Generator interface {
	Stream(ctx context.Context, messages []llm.Message, onDelta func(string) error) (string, error)
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Orchestrator sequences the pipeline stages for one request. Single pass,
// no retries at this level; retries belong to the collaborator clients.
type Orchestrator struct {
	searcher      Searcher
	enricher      Enricher
	generator     Generator
	contextBudget int
	logger        logger.Logger
	obs           *observability.Observability
}

func NewOrchestrator(searcher Searcher, enricher Enricher, generator Generator, contextBudget int, log logger.Logger, obs *observability.Observability) *Orchestrator {
	return &Orchestrator{
		searcher:      searcher,
		enricher:      enricher,
		generator:     generator,
		contextBudget: contextBudget,
		logger:        log.WithFields(map[string]interface{}{"component": "orchestrator"}),
		obs:           obs,
	}
}

// Run executes the full pipeline, emitting events on stream, and closes the
// stream when done. The conversation history supplies prior turns; the
// query is the latest user message. A fresh search runs every turn.
func (o *Orchestrator) Run(ctx context.Context, requestID string, history []llm.Message, stream *Stream) {
	defer stream.Close()

	start := time.Now()
	status := "success"
	defer func() {
		if o.obs != nil {
			o.obs.RecordRequest(ctx, status)
			o.obs.RecordRequestDuration(ctx, time.Since(start), status)
		}
	}()

	log := o.logger.WithFields(map[string]interface{}{"requestId": requestID})

	query := latestUserQuery(history)
	if query == "" {
		status = "error"
		stream.Fail(commonerrors.NewRequestInvalidError("no user message in conversation"))
		return
	}

	log.Info("processing request", map[string]interface{}{"query": query})
	stream.EmitStatus("searching")

	searchStart := time.Now()
	bundle, err := o.searcher.Run(ctx, query)
	metrics.StageDuration.WithLabelValues("search").Observe(time.Since(searchStart).Seconds())
	if err != nil {
		status = "error"
		stream.Fail(mapSearchError(ctx, err))
		return
	}

	stream.EmitSources(bundle)

	// Entity detection runs against the raw query, independent of search
	// results. No match emits nothing.
	if symbol, ok := DetectTicker(query); ok {
		stream.EmitTicker(symbol)
	}

	if len(bundle.Sources) > 0 {
		stream.EmitStatus("reading")

		enrichStart := time.Now()
		o.enricher.Enrich(ctx, bundle.Sources)
		metrics.StageDuration.WithLabelValues("enrich").Observe(time.Since(enrichStart).Seconds())

		stream.EmitSources(bundle)
	}

	blocks := BuildContext(bundle.Sources, query, o.contextBudget)
	stream.EmitStatus("answering")

	generateStart := time.Now()
	answer, err := o.generator.Stream(ctx, buildAnswerMessages(history, RenderContext(blocks), query), func(delta string) error {
		stream.EmitDelta(delta)
		return nil
	})
	metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(generateStart).Seconds())
	if err != nil {
		status = "error"
		stream.Fail(mapGenerationError(err))
		return
	}

	// Follow-ups are best-effort: a failure here is swallowed and the
	// request still succeeds.
	followupStart := time.Now()
	text, err := o.generator.Complete(ctx, buildFollowupMessages(answer, bundle.Sources))
	metrics.StageDuration.WithLabelValues("followup").Observe(time.Since(followupStart).Seconds())
	if err != nil {
		log.Warn("follow-up generation failed", map[string]interface{}{"error": err.Error()})
		return
	}

	stream.EmitFollowups(ParseFollowups(text))
}

// latestUserQuery returns the content of the most recent user message.
func latestUserQuery(history []llm.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == llm.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

func mapSearchError(ctx context.Context, err error) *commonerrors.ServiceError {
	var statusErr *search.StatusError
	if errors.As(err, &statusErr) {
		return commonerrors.NewSearchFailedError(err, statusErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return commonerrors.NewSearchTimeoutError()
	}
	return commonerrors.NewSearchFailedError(err, 0)
}

func mapGenerationError(err error) *commonerrors.ServiceError {
	var svcErr *commonerrors.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return commonerrors.NewGenerationError(0, err)
}
