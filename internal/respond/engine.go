package respond

import (
	"context"

	"go.uber.org/zap"

	"github.com/zincsforboats/zincfinder/internal/catalog"
	"github.com/zincsforboats/zincfinder/internal/models"
	"github.com/zincsforboats/zincfinder/internal/queryparse"
)

// adviceErrorText replaces the advice suffix when generation fails.
const adviceErrorText = "An error occurred while trying to generate a response."

const advicePrefix = "\n\nAdditionally, here's some advice: "

// Advisor produces the optional advice suffix for a raw query.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

// Engine runs the query pipeline: parse, catalog lookup, compose, and the
// optional advice suffix. Upstream failures are degraded here, so Respond
// always produces a reply.
type Engine struct {
	catalog  catalog.Client
	advisor  Advisor
	composer *Composer
	logger   *zap.Logger
}

// NewEngine creates an engine with the given dependencies. advisor may be
// nil, which disables the advice suffix.
func NewEngine(cat catalog.Client, adv Advisor, composer *Composer, logger *zap.Logger) *Engine {
	return &Engine{
		catalog:  cat,
		advisor:  adv,
		composer: composer,
		logger:   logger,
	}
}

// Respond answers query with a composed reply. The catalog is searched for
// the parsed product category, falling back to the raw query when no
// category matched. A catalog failure degrades to the fallback message and
// an advice failure to a fixed sentence; neither surfaces to the caller.
func (e *Engine) Respond(ctx context.Context, query string, page, perPage int) models.Reply {
	parsed := queryparse.Parse(query)
	e.logger.Debug("parsed query",
		zap.String("year", parsed.Year),
		zap.String("model", parsed.Model),
		zap.String("product", parsed.Product),
	)

	term := parsed.Product
	if term == "" {
		term = query
	}

	products, err := e.catalog.Search(ctx, term)
	if err != nil {
		e.logger.Error("catalog search failed", zap.String("term", term), zap.Error(err))
		products = nil
	}
	e.logger.Info("catalog search completed",
		zap.String("term", term),
		zap.Int("matches", len(products)),
	)

	reply := e.composer.Compose(products, page, perPage)

	if e.advisor != nil {
		advice, err := e.advisor.Advise(ctx, query)
		if err != nil {
			e.logger.Error("advice generation failed", zap.Error(err))
			advice = adviceErrorText
		}
		reply.Message += advicePrefix + advice
	}

	return reply
}
