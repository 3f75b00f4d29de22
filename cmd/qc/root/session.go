package root

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"

	"questchronicles/internal/config"
	"questchronicles/internal/engine"
	"questchronicles/internal/storage"
)

const configDefaultName = config.DefaultFile

// session is everything one command invocation works with.
type session struct {
	cfg    config.Config
	svc    *engine.Service
	quests engine.QuestCatalog
	items  engine.ItemCatalog
}

// openSession loads config and builds the service. Catalogs are loaded only
// when withCatalogs is set, so data-less commands work before init-data.
func openSession(opts *options, withCatalogs bool) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	verbose := cfg.Verbose || opts.verbose

	logger := log.New(os.Stderr, "qc: ", 0)
	seed := cfg.Seed
	if seed == 0 {
		seed = engine.NewSeed()
	}
	svc := engine.NewService(cfg.Rules(), logger, rand.New(rand.NewSource(seed)), engine.WithVerbose(verbose))

	s := &session{cfg: cfg, svc: svc}
	if !withCatalogs {
		return s, nil
	}
	s.quests, s.items, err = storage.LoadCatalogs(cfg.DataDir)
	if err != nil {
		if errors.Is(err, storage.ErrMissingDataFile) {
			return nil, fmt.Errorf("%w (run `qc init-data` to create the default catalogs)", err)
		}
		return nil, err
	}
	return s, nil
}

func (s *session) characterName(opts *options) (string, error) {
	if opts.character == "" {
		return "", errors.New("no character selected; pass --character <name>")
	}
	return opts.character, nil
}

func (s *session) loadCharacter(opts *options) (*engine.Character, error) {
	name, err := s.characterName(opts)
	if err != nil {
		return nil, err
	}
	c, err := storage.LoadCharacter(s.cfg.SaveDir, name)
	if err != nil {
		return nil, err
	}
	if err := s.svc.CheckCapacity(c); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return c, nil
}

func (s *session) save(c *engine.Character) error {
	if err := storage.SaveCharacter(s.cfg.SaveDir, c); err != nil {
		return fmt.Errorf("save %s: %w", c.Name, err)
	}
	return nil
}

// mutate loads the selected character, applies fn and saves on success.
func (s *session) mutate(opts *options, fn func(c *engine.Character) error) (*engine.Character, error) {
	c, err := s.loadCharacter(opts)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	return c, s.save(c)
}

func (s *session) index(ctx context.Context) (*storage.Index, error) {
	return storage.BuildIndex(ctx, s.quests, s.items)
}

func (s *session) item(id string) (engine.Item, error) {
	it, ok := s.items.Get(id)
	if !ok {
		return engine.Item{}, &engine.Error{
			Code:     engine.CodeItemNotFound,
			Message:  fmt.Sprintf("item '%s' is not in the catalog", id),
			Metadata: map[string]string{"item_id": id},
		}
	}
	return it, nil
}
