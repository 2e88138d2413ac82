package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codex-sync/pkg/journal"
	"github.com/mattsolo1/codex-sync/pkg/models"
	"github.com/mattsolo1/codex-sync/pkg/storage"
	"github.com/mattsolo1/codex-sync/pkg/store"
)

// ErrNoJournal is returned by History when no journal is available.
var ErrNoJournal = errors.New("pass journal is not available")

// Service reconciles a notes directory with the notebook document
type Service struct {
	Config  *Config
	Store   *store.Store
	Journal *journal.Journal

	logger *logrus.Entry
	now    func() time.Time
	newID  func() string
}

// Config holds service configuration
type Config struct {
	DocumentPath string                  `mapstructure:"document_path"`
	NotesDir     string                  `mapstructure:"notes_dir"`
	DataDir      string                  `mapstructure:"data_dir"`
	Overwrite    storage.OverwritePolicy `mapstructure:"overwrite"`
	Backup       bool                    `mapstructure:"backup"`
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the time source used for pass timestamps and notebook
// names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the pass identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New creates a service. The journal is opened in config.DataDir when one is
// set; a journal that cannot be opened is logged and skipped.
func New(config *Config, logger *logrus.Logger, opts ...Option) (*Service, error) {
	if config == nil || config.DocumentPath == "" {
		return nil, fmt.Errorf("create service: document path is required")
	}
	if config.NotesDir == "" {
		return nil, fmt.Errorf("create service: notes directory is required")
	}
	if config.Overwrite == "" {
		config.Overwrite = storage.Overwrite
	}
	if logger == nil {
		logger = logrus.New()
	}

	s := &Service{
		Config: config,
		Store:  store.New(config.DocumentPath, config.Backup),
		logger: logger.WithField("component", "service"),
		now:    time.Now,
		newID:  func() string { return xid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if config.DataDir != "" {
		j, err := journal.Open(config.DataDir)
		if err != nil {
			s.logger.WithError(err).Warn("Pass journal unavailable; history will not be recorded")
		} else {
			s.Journal = j
		}
	}

	return s, nil
}

// Close releases the journal.
func (s *Service) Close() error {
	if s.Journal == nil {
		return nil
	}
	return s.Journal.Close()
}

// Document loads the current document.
func (s *Service) Document() (*models.Document, error) {
	doc, err := s.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Init creates an empty document and the notes directory.
func (s *Service) Init(schemaVersion int) error {
	if err := s.Store.Create(schemaVersion); err != nil {
		return fmt.Errorf("init document: %w", err)
	}
	s.logger.WithField("path", s.Store.Path).Info("Created document")

	if err := ensureDir(s.Config.NotesDir); err != nil {
		return fmt.Errorf("init notes directory: %w", err)
	}
	return nil
}

// History returns recorded passes, newest first.
func (s *Service) History(limit int) ([]*journal.Entry, error) {
	if s.Journal == nil {
		return nil, ErrNoJournal
	}
	return s.Journal.List(limit)
}
