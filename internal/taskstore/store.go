// Package taskstore owns the authoritative task collection and mirrors it to a
// storage.Repository after every mutation.
package taskstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

const DefaultKey = "TASKS"

// CorruptSuffix names the side key that receives an unreadable payload before
// the first write replaces it.
const CorruptSuffix = ".corrupt"

type Options struct {
	Key    string
	IDs    model.IDGenerator
	Logger logrus.FieldLogger
	// RollbackOnSaveError restores the previous collection when the durable
	// write of a mutation fails. When false the mutation stays applied in memory.
	RollbackOnSaveError bool
}

type Store struct {
	mu       sync.RWMutex
	repo     storage.Repository
	key      string
	ids      model.IDGenerator
	log      logrus.FieldLogger
	rollback bool
	tasks    model.Collection
	// corrupt holds a payload that failed to decode until it is backed up.
	corrupt string
}

type seeder interface {
	Seed(model.Collection)
}

func New(repo storage.Repository, opts Options) (*Store, error) {
	if repo == nil {
		return nil, errors.New("taskstore: nil repository")
	}
	s := &Store{
		repo:     repo,
		key:      opts.Key,
		ids:      opts.IDs,
		log:      opts.Logger,
		rollback: opts.RollbackOnSaveError,
		tasks:    model.Collection{},
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.ids == nil {
		s.ids = model.UUIDGenerator{}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s, nil
}

func (s *Store) Key() string {
	return s.key
}

// Load reads the persisted collection and makes it current. A missing key
// yields an empty collection. On failure the in-memory collection is kept.
func (s *Store) Load(ctx context.Context) (model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.log.WithFields(logrus.Fields{"op": "load", "key": s.key})
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.tasks = model.Collection{}
			s.corrupt = ""
			logger.Debug("no stored tasks, starting empty")
			return s.tasks.Clone(), nil
		}
		logger.WithError(err).Error("read tasks")
		return s.tasks.Clone(), &StorageError{Op: "load", Key: s.key, Err: err}
	}

	tasks, err := Decode(raw)
	if err != nil {
		logger.WithError(err).Error("decode tasks")
		s.corrupt = raw
		return s.tasks.Clone(), &StorageError{Op: "load", Key: s.key, Err: err}
	}
	if dups := tasks.DuplicateIDs(); len(dups) > 0 {
		logger.WithField("duplicate_ids", dups).Warn("stored tasks share ids")
	}
	s.corrupt = ""
	s.tasks = tasks
	if sd, ok := s.ids.(seeder); ok {
		sd.Seed(tasks)
	}
	logger.WithField("count", len(tasks)).Info("tasks loaded")
	return s.tasks.Clone(), nil
}

// Save overwrites the stored value with c and, once written, makes c current.
func (s *Store) Save(ctx context.Context, c model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, "save", c); err != nil {
		return err
	}
	s.tasks = c.Clone()
	return nil
}

// Create assigns a fresh id to d, appends it and persists the collection. On a
// StorageError the returned task stays in memory, unless rollback is enabled,
// in which case the zero Task is returned.
func (s *Store) Create(ctx context.Context, d model.Draft) (model.Task, error) {
	if err := d.Validate(); err != nil {
		return model.Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	task := d.WithID(s.ids.NewID())
	next, err := model.Add(s.tasks, task)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.commit(ctx, "add", task.ID, next); err != nil {
		if s.rollback {
			return model.Task{}, err
		}
		return task, err
	}
	return task, nil
}

// Update replaces the task with t.ID in place. A missing id leaves the
// collection untouched and returns ErrTaskNotFound.
func (s *Store) Update(ctx context.Context, t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found, err := model.Update(s.tasks, t)
	if err != nil {
		return err
	}
	if !found {
		s.log.WithFields(logrus.Fields{"op": "update", "task_id": t.ID}).Warn("update target not found")
		return ErrTaskNotFound
	}
	return s.commit(ctx, "update", t.ID, next)
}

// Delete removes the task with id. A missing id returns ErrTaskNotFound and
// writes nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := model.Remove(s.tasks, id)
	if !found {
		s.log.WithFields(logrus.Fields{"op": "delete", "task_id": id}).Warn("delete target not found")
		return ErrTaskNotFound
	}
	return s.commit(ctx, "delete", id, next)
}

func (s *Store) List() model.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.Clone()
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, _, ok := s.tasks.Find(id)
	return t, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Restore replaces the in-memory collection without writing it, for callers
// rolling back after a failed save.
func (s *Store) Restore(c model.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = c.Clone()
}

// commit applies next in memory, then writes it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op, taskID string, next model.Collection) error {
	prev := s.tasks
	s.tasks = next
	if err := s.write(ctx, op, next); err != nil {
		if s.rollback {
			s.tasks = prev
		}
		return err
	}
	s.log.WithFields(logrus.Fields{"op": op, "task_id": taskID, "count": len(next)}).Debug("tasks saved")
	return nil
}

func (s *Store) write(ctx context.Context, op string, c model.Collection) error {
	logger := s.log.WithFields(logrus.Fields{"op": op, "key": s.key})
	payload, err := Encode(c)
	if err != nil {
		logger.WithError(err).Error("encode tasks")
		return &StorageError{Op: op, Key: s.key, Err: err}
	}
	if s.corrupt != "" {
		backup := s.key + CorruptSuffix
		if err := s.repo.Put(ctx, backup, s.corrupt); err != nil {
			logger.WithError(err).Error("back up unreadable tasks")
			return &StorageError{Op: op, Key: backup, Err: err}
		}
		logger.WithField("backup_key", backup).Warn("unreadable tasks moved aside before overwrite")
		s.corrupt = ""
	}
	if err := s.repo.Put(ctx, s.key, payload); err != nil {
		logger.WithError(err).Error("write tasks")
		return &StorageError{Op: op, Key: s.key, Err: err}
	}
	return nil
}
