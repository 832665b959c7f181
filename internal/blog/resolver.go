// internal/blog/resolver.go
package blog

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/OgnjenAdzic28/portfolio/internal/content"
)

const (
	tracerName = "github.com/OgnjenAdzic28/portfolio/internal/blog"
	meterName  = "github.com/OgnjenAdzic28/portfolio/internal/blog"
)

// Resolver maps identifiers taken from URLs to posts of a content store.
// It holds no per-request state and is safe for concurrent use.
type Resolver struct {
	store    content.Store
	fsys     fs.FS
	postsDir string
	ext      string
	author   string

	logger   zerolog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	resolves metric.Int64Counter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFS enables direct body reads of <dir>/<slug><ext> from fsys.
func WithFS(fsys fs.FS, dir, ext string) Option {
	return func(r *Resolver) {
		r.fsys = fsys
		r.postsDir = dir
		r.ext = ext
	}
}

// WithDefaultAuthor sets the author used for posts that name none.
func WithDefaultAuthor(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.author = name
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		r.tracer = tracer
	}
}

func WithMeter(meter metric.Meter) Option {
	return func(r *Resolver) {
		r.meter = meter
	}
}

// NewResolver uses the global OpenTelemetry providers unless overridden.
func NewResolver(store content.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		ext:    ".mdoc",
		author: DefaultAuthor,
		logger: log.With().Str("component", "blog").Logger(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.meter == nil {
		r.meter = otel.Meter(meterName)
	}
	r.resolves = r.newResolveCounter()
	return r
}

// newResolveCounter runs after all options so the counter is logged through
// the configured logger when the meter rejects it.
func (r *Resolver) newResolveCounter() metric.Int64Counter {
	counter, err := r.meter.Int64Counter("blog.resolve.count",
		metric.WithDescription("Post resolutions by strategy and outcome"),
		metric.WithUnit("{resolve}"),
	)
	if err != nil {
		r.logger.Warn().Err(err).Str("instrument", "blog.resolve.count").Msg("resolve counter unavailable")
	}
	return counter
}

// ResolvePost finds the published post answering to rawSlug. The identifier
// may be percent-encoded (once or twice) or differ from the stored slug in
// case and whitespace. Lookup failures of any kind yield false.
func (r *Resolver) ResolvePost(ctx context.Context, rawSlug string) (*Post, bool) {
	ctx, span := r.tracer.Start(ctx, "blog.ResolvePost")
	defer span.End()

	id := r.normalizeInput(rawSlug)

	slug, entry, strategy := r.lookup(ctx, id)
	span.SetAttributes(attribute.String("blog.strategy", strategy))

	post := r.assemble(slug, entry)
	outcome := "found"
	switch {
	case entry == nil:
		outcome = "miss"
	case post == nil:
		outcome = "unpublished"
	}
	if r.resolves != nil {
		r.resolves.Add(ctx, 1, metric.WithAttributes(
			attribute.String("strategy", strategy),
			attribute.String("outcome", outcome),
		))
	}
	if post == nil {
		return nil, false
	}
	return post, true
}

// normalizeInput decodes rawSlug once. A malformed identifier is kept as
// given, untrimmed.
func (r *Resolver) normalizeInput(rawSlug string) string {
	decoded, err := decodeComponent(rawSlug)
	if err != nil {
		r.logger.Warn().Err(err).Str("slug", rawSlug).Msg("failed to decode slug")
		return rawSlug
	}
	return strings.TrimSpace(decoded)
}

// lookup runs the keyed strategies, then a scan of the collection. The entry
// is nil when nothing matched; strategy names the attempt that ended the search.
func (r *Resolver) lookup(ctx context.Context, id string) (string, *content.Entry, string) {
	for _, s := range lookupStrategies {
		key, ok := s.candidate(id)
		if !ok {
			continue
		}
		entry, err := r.store.Read(ctx, key)
		if err == nil && entry != nil {
			return key, entry, s.name
		}
		if err != nil && !errors.Is(err, content.ErrNotFound) {
			r.logger.Warn().Err(err).Str("slug", key).Str("strategy", s.name).Msg("store read failed")
		}
	}

	records, err := r.store.All(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list posts")
		return "", nil, "scan"
	}
	for _, rec := range records {
		if name, ok := matchSlug(rec.Slug, id); ok {
			return rec.Slug, rec.Entry, name
		}
	}
	return "", nil, "none"
}

// AllPosts returns every published post, newest first. Posts sharing a date
// keep the collection's order.
func (r *Resolver) AllPosts(ctx context.Context) ([]Post, error) {
	ctx, span := r.tracer.Start(ctx, "blog.AllPosts")
	defer span.End()

	records, err := r.store.All(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	posts := make([]Post, 0, len(records))
	for _, rec := range records {
		if p := r.assemble(rec.Slug, rec.Entry); p != nil {
			posts = append(posts, *p)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedDate.After(posts[j].PublishedDate)
	})
	return posts, nil
}

// FeaturedPosts is the featured subset of AllPosts, in the same order.
func (r *Resolver) FeaturedPosts(ctx context.Context) ([]Post, error) {
	all, err := r.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]Post, 0, len(all))
	for _, p := range all {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// PostBySlug is ResolvePost reporting a miss as ErrNotFound.
func (r *Resolver) PostBySlug(ctx context.Context, rawSlug string) (*Post, error) {
	post, ok := r.ResolvePost(ctx, rawSlug)
	if !ok {
		return nil, ErrNotFound
	}
	return post, nil
}
