// Package service implements the deep-link resolution engine: normalize the
// query identifier, walk the alternate-identifier graph breadth-first under
// depth and result caps, and consolidate everything reachable into one
// deduplicated profile.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"deeplink/internal/audit"
	"deeplink/internal/lookup/metrics"
	"deeplink/internal/lookup/models"
	"deeplink/internal/lookup/store"
	dErrors "deeplink/pkg/domain-errors"
	"deeplink/pkg/phone"
	"deeplink/pkg/platform/sentinel"
	"deeplink/pkg/requestcontext"
)

// Caps bounds one traversal. Passed by value into every query so concurrent
// lookups with different caps (tests) cannot interfere.
type Caps struct {
	// MaxDepth is the maximum number of BFS hops from the query identifier.
	MaxDepth int
	// MaxResults caps the accumulated record count across all hops.
	MaxResults int
}

// DefaultCaps matches the production configuration defaults.
var DefaultCaps = Caps{MaxDepth: 3, MaxResults: 25}

func (c Caps) withDefaults() Caps {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultCaps.MaxDepth
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultCaps.MaxResults
	}
	return c
}

// ProfileCache is the optional consolidated-profile cache consulted before
// traversal. A Get miss returns sentinel.ErrNotFound.
type ProfileCache interface {
	Get(ctx context.Context, phone string) (*models.LookupResult, error)
	Set(ctx context.Context, phone string, result *models.LookupResult) error
}

// Service resolves one contact identifier into a consolidated profile. It
// holds no cross-query mutable state; any number of Lookup calls may run
// concurrently.
type Service struct {
	store   store.RecordStore
	caps    Caps
	engine  string
	logger  *slog.Logger
	cache   ProfileCache
	metrics *metrics.Metrics
	audit   *audit.Recorder
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithCache(cache ProfileCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAudit(recorder *audit.Recorder) Option {
	return func(s *Service) {
		s.audit = recorder
	}
}

// WithEngineName sets the store engine label reported by Stats.
func WithEngineName(engine string) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// New constructs the lookup service around a record store.
func New(recordStore store.RecordStore, caps Caps, opts ...Option) (*Service, error) {
	if recordStore == nil {
		return nil, fmt.Errorf("record store is required")
	}

	svc := &Service{
		store:  recordStore,
		caps:   caps.withDefaults(),
		engine: "unknown",
		logger: slog.Default(),
		tracer: otel.Tracer("deeplink/lookup"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Lookup resolves a raw query string into a consolidated profile.
//
// Errors: CodeBadRequest when the input fails normalization (traversal never
// starts); CodeUnavailable when the record store fails mid-traversal, in
// which case partial results are discarded. Empty results are not an error:
// the result carries found=false with empty lists.
func (s *Service) Lookup(ctx context.Context, rawQuery string) (*models.LookupResult, error) {
	start := time.Now()

	query, err := phone.Normalize(rawQuery)
	if err != nil {
		s.metrics.ObserveLookup("invalid", time.Since(start).Seconds())
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid mobile number")
	}

	ctx, span := s.tracer.Start(ctx, "lookup.deep_search",
		trace.WithAttributes(attribute.String("lookup.query", query)))
	defer span.End()

	if cached := s.fromCache(ctx, query); cached != nil {
		cached.ResponseTimeMS = time.Since(start).Milliseconds()
		s.finish(ctx, span, cached, start, true)
		return cached, nil
	}

	records, depth, err := s.traverse(ctx, query)
	if err != nil {
		s.metrics.ObserveLookup("error", time.Since(start).Seconds())
		s.logger.ErrorContext(ctx, "traversal failed",
			"request_id", requestcontext.RequestID(ctx),
			"query", query,
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "record store unavailable")
	}

	profile := aggregate(records)
	result := assemble(query, profile, time.Since(start))
	span.SetAttributes(attribute.Int("lookup.depth", depth))
	s.metrics.ObserveTraversal(depth, len(records))

	s.toCache(ctx, query, result)
	s.finish(ctx, span, result, start, false)
	return result, nil
}

// Stats reports the backing dataset size for the stats endpoint.
func (s *Service) Stats(ctx context.Context) (*models.StoreStats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "record store unavailable")
	}
	return &models.StoreStats{TotalRecords: count, Engine: s.engine}, nil
}

// Health reports whether the backing store is reachable.
func (s *Service) Health(ctx context.Context) error {
	if err := s.store.Health(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "record store unavailable")
	}
	return nil
}

// assemble is the pure formatting step from profile to response shape.
// Slices are always non-nil so JSON lists render as [] rather than null.
func assemble(query string, profile models.ConsolidatedProfile, elapsed time.Duration) *models.LookupResult {
	return &models.LookupResult{
		Query:          query,
		Found:          profile.TotalRecords > 0,
		TotalRecords:   profile.TotalRecords,
		TotalPhones:    profile.TotalPhones,
		Phones:         profile.Phones,
		Names:          profile.Names,
		FatherNames:    profile.FatherNames,
		Emails:         profile.Emails,
		Addresses:      profile.Addresses,
		Regions:        profile.Regions,
		ResponseTimeMS: elapsed.Milliseconds(),
	}
}

func (s *Service) fromCache(ctx context.Context, query string) *models.LookupResult {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, query)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			// Cache trouble degrades to a live lookup, never fails the query.
			s.logger.WarnContext(ctx, "profile cache get failed",
				"query", query,
				"error", err.Error(),
			)
		}
		return nil
	}
	return cached
}

func (s *Service) toCache(ctx context.Context, query string, result *models.LookupResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, query, result); err != nil {
		s.logger.WarnContext(ctx, "profile cache set failed",
			"query", query,
			"error", err.Error(),
		)
	}
}

func (s *Service) finish(ctx context.Context, span trace.Span, result *models.LookupResult, start time.Time, cached bool) {
	span.SetAttributes(
		attribute.Bool("lookup.found", result.Found),
		attribute.Int("lookup.records", result.TotalRecords),
		attribute.Bool("lookup.cached", cached),
	)

	outcome := "not_found"
	if result.Found {
		outcome = "found"
	}
	s.metrics.ObserveLookup(outcome, time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "lookup completed",
		"request_id", requestcontext.RequestID(ctx),
		"query", result.Query,
		"found", result.Found,
		"records", result.TotalRecords,
		"cached", cached,
		"duration_ms", result.ResponseTimeMS,
	)

	if s.audit != nil {
		s.audit.Record(audit.Event{
			RequestID:  requestcontext.RequestID(ctx),
			Query:      result.Query,
			ClientIP:   requestcontext.ClientIP(ctx),
			UserAgent:  requestcontext.UserAgent(ctx),
			ClientApp:  requestcontext.ClientApp(ctx),
			Found:      result.Found,
			Records:    result.TotalRecords,
			DurationMS: result.ResponseTimeMS,
		})
	}
}
