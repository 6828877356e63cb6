package fixtures

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Store publishes the current Tables. Readers always see a complete set;
// a reload replaces the whole value and never edits the one in use.
type Store struct {
	current atomic.Pointer[Tables]
	source  Source
	logger  *zap.Logger
}

func NewStore(initial *Tables, src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initial == nil {
		initial = Default()
	}

	s := &Store{source: src, logger: logger}
	s.current.Store(initial)
	return s
}

// Tables returns the current fixtures.
func (s *Store) Tables() *Tables {
	return s.current.Load()
}

// Swap installs t and returns the previous value.
func (s *Store) Swap(t *Tables) *Tables {
	return s.current.Swap(t)
}

// Reload re-reads the source files. On error the current tables stay in place.
func (s *Store) Reload() error {
	t, err := Load(s.source)
	if err != nil {
		s.logger.Warn("fixture reload failed, keeping current tables", zap.Error(err))
		return err
	}

	s.Swap(t)
	s.logger.Info("fixtures reloaded",
		zap.Int("questions", t.Catalog.Len()),
		zap.Int("parties", t.Positions.Len()),
		zap.String("questions_file", s.source.QuestionsFile),
		zap.String("positions_file", s.source.PositionsFile),
	)
	return nil
}
