package main

import (
	"context"
	"fmt"

	"github.com/jackzampolin/inkwell/internal/config"
	"github.com/jackzampolin/inkwell/internal/notify"
	"github.com/jackzampolin/inkwell/internal/providers"
	"github.com/jackzampolin/inkwell/internal/storage"
	"github.com/jackzampolin/inkwell/internal/store"
	"github.com/jackzampolin/inkwell/internal/workflow"
)

// app bundles the wired components every command needs.
type app struct {
	cm     *config.Manager
	cfg    *config.Config
	store  *store.Store
	engine *workflow.Engine
}

func (a *app) Close() error {
	return a.store.Close()
}

// newApp loads configuration and wires the datastore, model client,
// artifact storage, notification channels and workflow engine.
func newApp(ctx context.Context) (*app, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	blobs, err := newStorage(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	llm := providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:      cfg.LLM.ResolvedAPIKey(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		BaseURL:     cfg.LLM.BaseURL,
	})

	engine, err := workflow.New(workflow.Config{
		Store:         s,
		LLM:           llm,
		Storage:       blobs,
		Channels:      newChannels(cfg),
		ChapterTarget: cfg.Chapters.TargetCount,
		Logger:        logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	return &app{cm: cm, cfg: cfg, store: s, engine: engine}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Provider {
	case "azure":
		return storage.NewAzureStore(ctx, storage.AzureConfig{
			ConnectionString: config.ResolveEnvVars(cfg.Storage.Azure.ConnectionString),
			Container:        cfg.Storage.Azure.Container,
		}, logger)
	case "", "local":
		return storage.NewLocalStore(cfg.Storage.Local.Dir)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

func newChannels(cfg *config.Config) []notify.Channel {
	var channels []notify.Channel
	if cfg.Notify.Email.Configured() {
		channels = append(channels, notify.NewEmail(notify.EmailConfig{
			Host:     cfg.Notify.Email.Host,
			Port:     cfg.Notify.Email.Port,
			User:     cfg.Notify.Email.User,
			Password: cfg.Notify.Email.ResolvedPassword(),
			To:       cfg.Notify.Email.To,
		}, logger))
	}
	if cfg.Notify.Webhook.Configured() {
		channels = append(channels, notify.NewWebhook(
			config.ResolveEnvVars(cfg.Notify.Webhook.URL), logger))
	}
	return channels
}
