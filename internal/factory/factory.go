// Package factory orchestrates the generation pipeline: prompt screening,
// quota enforcement, the provider ensemble, code screening, branding
// injection, and persistence.
package factory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kivosy/factory/internal/appstore"
	"github.com/kivosy/factory/internal/branding"
	"github.com/kivosy/factory/internal/log"
	"github.com/kivosy/factory/internal/provider"
	"github.com/kivosy/factory/internal/quota"
	"github.com/kivosy/factory/internal/screener"
)

// ProgressFunc receives human-readable status updates while a generation
// runs. A nil ProgressFunc is valid and silently drops updates.
type ProgressFunc func(status string)

// Result is a finished generation.
type Result struct {
	ID   uuid.UUID
	Meta appstore.IndexEntry
	HTML string
}

// Factory runs the full prompt-to-app pipeline.
type Factory struct {
	screen   *screener.Screener
	prompts  *screener.PromptValidator
	quota    *quota.Tracker
	store    *appstore.Store
	adapters []provider.Adapter
	logger   log.Logger
}

// New creates a Factory. Adapters are tried in the given order; the first
// successful completion wins.
func New(store *appstore.Store, tracker *quota.Tracker, adapters []provider.Adapter, logger log.Logger) *Factory {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Factory{
		screen:   screener.New(),
		prompts:  screener.NewPromptValidator(),
		quota:    tracker,
		store:    store,
		adapters: adapters,
		logger:   logger,
	}
}

// Generate builds a new app from a user prompt and persists it under a
// fresh ID. The daily quota is consumed only after the app is saved.
func (f *Factory) Generate(ctx context.Context, prompt string, progress ProgressFunc) (*Result, error) {
	if f.prompts.Detect(prompt) {
		return nil, ErrPromptInjection
	}
	return f.run(ctx, buildSystemPrompt(prompt), prompt, uuid.New(), progress)
}

// Modify regenerates an existing app according to an edit instruction and
// re-saves it under the same ID. The stored prompt becomes the instruction
// prefixed with "edit: " so the history shows what changed last.
func (f *Factory) Modify(ctx context.Context, id uuid.UUID, instruction string, progress ProgressFunc) (*Result, error) {
	if f.prompts.Detect(instruction) {
		return nil, ErrPromptInjection
	}

	current, err := f.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading app %s: %w", id, err)
	}

	return f.run(ctx, buildModifyPrompt(instruction, current), "edit: "+instruction, id, progress)
}

func (f *Factory) run(ctx context.Context, modelPrompt, storedPrompt string, id uuid.UUID, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(string) {}
	}

	if !f.quota.CanGenerate() {
		return nil, fmt.Errorf("%w (max %d per day)", ErrQuotaExceeded, f.quota.MaxPerDay())
	}

	progress("requesting code from the model ensemble...")
	raw, err := f.complete(ctx, modelPrompt, progress)
	if err != nil {
		return nil, err
	}

	code := cleanOutput(raw)

	progress("running security screening...")
	report := f.screen.ScreenCode(code)
	if !report.Safe {
		f.logger.Warn("generated code rejected", "issues", len(report.Issues))
		return nil, &SecurityError{Issues: report.Issues}
	}

	final := branding.Inject(code, storedPrompt, id)

	progress("saving app...")
	meta, err := f.store.Save(id, final, storedPrompt)
	if err != nil {
		return nil, fmt.Errorf("saving app: %w", err)
	}
	if err := f.quota.Increment(); err != nil {
		return nil, fmt.Errorf("recording usage: %w", err)
	}

	progress(fmt.Sprintf("done, app id %s", id.String()[:8]))
	f.logger.Info("app generated", "id", id, "size_kb", meta.SizeKB)

	return &Result{ID: id, Meta: meta, HTML: final}, nil
}

// complete tries each available adapter in order and returns the first
// successful completion. Per-adapter failures are accumulated so the caller
// sees why every provider was skipped or failed.
func (f *Factory) complete(ctx context.Context, prompt string, progress ProgressFunc) (string, error) {
	var attempts []string
	for _, adapter := range f.adapters {
		if !adapter.Available() {
			continue
		}
		progress(fmt.Sprintf("trying %s...", adapter.Name()))
		text, err := adapter.Complete(ctx, prompt)
		if err != nil {
			f.logger.Warn("provider failed", "provider", adapter.Name(), "error", err)
			attempts = append(attempts, adapter.Name()+": "+err.Error())
			continue
		}
		return text, nil
	}
	return "", &ProvidersError{Attempts: attempts}
}
