package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
	domainservice "github.com/haxorport/postman-rewrite/internal/domain/service"
)

// RunOptions describes one replacement run
type RunOptions struct {
	// CollectionPath is the collection to rewrite
	CollectionPath string
	// OutputPath is where the result is written; empty rewrites CollectionPath
	OutputPath string
	// RulesFiles are the rule files to layer; empty uses the configured ones
	RulesFiles []string
	// DryRun applies the replacements without writing the result
	DryRun bool
	// Pretty indents the written collection
	Pretty bool
}

// ReplacementService loads a collection, applies replacement rules to it and
// writes it back
type ReplacementService struct {
	collectionRepo port.CollectionRepository
	rulesRepo      port.RulesRepository
	historyRepo    port.HistoryRepository
	engine         domainservice.ReplacementEngine
	config         *model.Config
	logger         port.Logger
}

// NewReplacementService creates a new ReplacementService instance
func NewReplacementService(
	collectionRepo port.CollectionRepository,
	rulesRepo port.RulesRepository,
	historyRepo port.HistoryRepository,
	engine domainservice.ReplacementEngine,
	config *model.Config,
	logger port.Logger,
) *ReplacementService {
	return &ReplacementService{
		collectionRepo: collectionRepo,
		rulesRepo:      rulesRepo,
		historyRepo:    historyRepo,
		engine:         engine,
		config:         config,
		logger:         logger,
	}
}

// Run performs a replacement run and records it in the history. The
// returned record describes the run, failed runs included.
func (s *ReplacementService) Run(ctx context.Context, opts RunOptions) (*model.RunRecord, error) {
	if opts.OutputPath == "" {
		opts.OutputPath = opts.CollectionPath
	}
	if len(opts.RulesFiles) == 0 {
		opts.RulesFiles = s.config.RulesFiles
	}

	record := model.NewRunRecord(uuid.NewString(), opts.CollectionPath, opts.OutputPath)
	record.RulesFiles = opts.RulesFiles
	log := s.logger.With("run", record.ID)

	err := s.run(log, record, opts)
	if err != nil {
		record.Fail(err)
		log.Error("Replacement run failed: %v", err)
	}
	if historyErr := s.historyRepo.Create(ctx, record); historyErr != nil {
		log.Warn("Failed to record run in history: %v", historyErr)
	}
	return record, err
}

func (s *ReplacementService) run(log port.Logger, record *model.RunRecord, opts RunOptions) error {
	replacements, err := s.rulesRepo.Load(opts.RulesFiles...)
	if err != nil {
		return errors.Wrap(err, "failed to load replacement rules")
	}
	record.Passes = replacements.Passes()
	if replacements.IsEmpty() {
		log.Warn("No replacement rules given, %s is left unchanged", opts.CollectionPath)
	}

	doc, err := s.collectionRepo.Load(opts.CollectionPath)
	if err != nil {
		return errors.Wrap(err, "failed to load collection")
	}
	record.Collection = doc.Collection.Info.Name
	record.Requests = doc.Collection.CountRequests()
	log.Debug("Loaded collection %q with %d requests from %s", record.Collection, record.Requests, opts.CollectionPath)

	// a partially rewritten collection is never written
	if err := s.engine.PerformReplacements(doc.Collection, replacements); err != nil {
		return errors.Wrap(err, "failed to apply replacements")
	}

	if opts.DryRun {
		record.Status = model.RunStatusDryRun
		log.Info("Dry run: applied [%s] to %d requests, nothing written", strings.Join(record.Passes, ", "), record.Requests)
		return nil
	}

	if err := s.collectionRepo.Save(doc, opts.OutputPath, opts.Pretty || s.config.Pretty); err != nil {
		return errors.Wrap(err, "failed to save collection")
	}
	record.Status = model.RunStatusOK
	log.Info("Applied [%s] to %d requests, written to %s", strings.Join(record.Passes, ", "), record.Requests, opts.OutputPath)
	return nil
}

// History returns the most recent runs, newest first
func (s *ReplacementService) History(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	records, err := s.historyRepo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read history")
	}
	return records, nil
}
