package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls a structured attribute out of a context.Context.
// It returns false when there is nothing to extract, letting callers skip
// the attribute entirely instead of logging a zero value.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level           slog.Leveler
	json            bool
	output          io.Writer
	attrs           []slog.Attr
	handlerOpts     *slog.HandlerOptions
	contextKeys     []contextKeyMapping
	contextExtracts []ContextExtractor
}

type contextKeyMapping struct {
	ctxKey   any
	attrName string
}

// Option configures a logger built with New.
type Option func(*config)

// WithLevel sets the minimum level that will be emitted.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) { c.level = level }
}

// WithJSONFormatter switches the handler to slog.JSONHandler.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithTextFormatter switches the handler to slog.TextHandler (the default).
func WithTextFormatter() Option {
	return func(c *config) { c.json = false }
}

// WithOutput sets the destination writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr attaches static attributes to every record emitted by the logger.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions overrides the underlying slog.HandlerOptions wholesale.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.handlerOpts = opts }
}

// WithContextValue maps a context value under ctxKey to a slog attribute
// named attrName whenever it is present on a *Context-aware logging call.
func WithContextValue(ctxKey any, attrName string) Option {
	return func(c *config) {
		c.contextKeys = append(c.contextKeys, contextKeyMapping{ctxKey: ctxKey, attrName: attrName})
	}
}

// WithContextExtractors registers custom extraction functions, evaluated in
// order, for attributes that cannot be expressed as a single context key.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.contextExtracts = append(c.contextExtracts, extractors...) }
}

// WithDevelopment configures a human-readable text logger at debug level,
// writing to stdout, tagged with the given service name.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.json = false
		c.level = slog.LevelDebug
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithStaging configures a JSON logger at info level tagged for staging.
func WithStaging(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// WithProduction configures a JSON logger at info level tagged for production.
func WithProduction(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// New builds a *slog.Logger from the given options. With no options it
// produces a text logger at info level writing to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOpts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var base slog.Handler
	if cfg.json {
		base = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		base = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	handler := slog.Handler(&contextHandler{
		Handler:    base,
		keys:       cfg.contextKeys,
		extractors: cfg.contextExtracts,
	})
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(handler)
}

// SetAsDefault installs log as the process-wide slog default logger.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}

// contextHandler decorates a base handler with attributes pulled from the
// record's context, so callers get automatic request-scoped fields without
// threading them through every log call.
type contextHandler struct {
	slog.Handler
	keys       []contextKeyMapping
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, m := range h.keys {
		if v := ctx.Value(m.ctxKey); v != nil {
			r.AddAttrs(slog.Any(m.attrName, v))
		}
	}
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			r.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), keys: h.keys, extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), keys: h.keys, extractors: h.extractors}
}
