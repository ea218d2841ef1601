package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/inkwell/internal/notify"
	"github.com/jackzampolin/inkwell/internal/providers"
	"github.com/jackzampolin/inkwell/internal/storage"
	"github.com/jackzampolin/inkwell/internal/store"
)

// node is a state of the workflow state machine.
type node int

const (
	nodeOutline node = iota
	nodeChapter
	nodeCompile
	nodeNotify
	nodeTerminated
)

// Engine executes the book generation state machine. Execution is strictly
// sequential within one invocation; the only cycle is chapter -> chapter.
type Engine struct {
	store         *store.Store
	llm           providers.Client
	blobs         storage.Store
	channels      []notify.Channel
	chapterTarget int
	logger        *slog.Logger
}

// Config configures a new Engine.
type Config struct {
	Store    *store.Store
	LLM      providers.Client
	Storage  storage.Store
	Channels []notify.Channel

	// ChapterTarget is the exact chapter count requested from the outline
	// prompt. Defaults to 5.
	ChapterTarget int
	Logger        *slog.Logger
}

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("workflow: store is required")
	}
	if cfg.LLM == nil {
		return nil, fmt.Errorf("workflow: llm client is required")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("workflow: storage is required")
	}
	if cfg.ChapterTarget <= 0 {
		cfg.ChapterTarget = 5
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		store:         cfg.Store,
		llm:           cfg.LLM,
		blobs:         cfg.Storage,
		channels:      cfg.Channels,
		chapterTarget: cfg.ChapterTarget,
		logger:        logger,
	}, nil
}

// Run drives one book through the state machine until a terminal node.
// It returns the final event. An error aborts the run immediately; the
// caller owns marking the book as failed.
func (e *Engine) Run(ctx context.Context, bookID string) (Event, error) {
	run, err := LoadRun(ctx, e.store, bookID)
	if err != nil {
		return "", err
	}

	logger := e.logger.With("book", bookID)
	logger.Info("workflow started", "title", run.Title)

	current := nodeOutline
	for current != nodeTerminated {
		switch current {
		case nodeOutline:
			if err := e.generateOutline(ctx, run); err != nil {
				return run.Event, err
			}
			current, err = e.routeAfterOutline(ctx, run)
			if err != nil {
				return run.Event, err
			}

		case nodeChapter:
			if err := e.generateChapter(ctx, run); err != nil {
				return run.Event, err
			}
			current = routeAfterChapter(run)

		case nodeCompile:
			if err := e.compileBook(ctx, run); err != nil {
				return run.Event, err
			}
			current = routeAfterCompile(run)

		case nodeNotify:
			// Notify is always terminal; it re-enters nothing.
			if err := e.sendNotification(ctx, run); err != nil {
				return run.Event, err
			}
			current = nodeTerminated
		}
	}

	logger.Info("workflow finished", "event", run.Event)
	return run.Event, nil
}
