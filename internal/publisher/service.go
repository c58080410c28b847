package publisher

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-editor/contentpath"
	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/logging"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	snapshotrepo "github.com/goliatone/go-editor/internal/snapshots"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/activity"
	"github.com/goliatone/go-editor/pkg/interfaces"
	"github.com/goliatone/go-editor/snapshots"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Source supplies the working content set, typically the registry store.
type Source interface {
	Content() map[string]nodes.Node
}

// Service is the save/publish gate. Saving always succeeds regardless of
// content validity; publishing validates every node covered by a registered
// section schema and refuses when any field fails.
type Service struct {
	repo     snapshotrepo.Repository
	source   Source
	registry *schemainternal.Registry
	clock    func() time.Time
	version  func(at time.Time) string
	logger   interfaces.Logger
	activity activity.Notifier
	events   *publishBroadcaster
}

// Option configures the publisher service.
type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithVersionFunc(version func(at time.Time) string) Option {
	return func(s *Service) {
		if version != nil {
			s.version = version
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithActivityNotifier(notifier activity.Notifier) Option {
	return func(s *Service) {
		s.activity = notifier
	}
}

func NewService(repo snapshotrepo.Repository, source Source, registry *schemainternal.Registry, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if registry == nil {
		registry = schemainternal.NewRegistry()
	}

	service := &Service{
		repo:     repo,
		source:   source,
		registry: registry,
		clock:    time.Now,
		logger:   logging.NoOp(),
		events:   newPublishBroadcaster(),
		version: func(at time.Time) string {
			return ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
		},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Save writes the current content to the draft slot. Invalid drafts are
// saved as-is; validation gates publication, not persistence.
func (s *Service) Save(ctx context.Context) (snapshots.Snapshot, error) {
	now := s.clock().UTC()
	snapshot := snapshots.Snapshot{
		Content: s.source.Content(),
		SavedAt: now,
		Version: s.version(now),
	}
	if err := s.repo.Put(ctx, snapshots.SlotDraft, snapshot); err != nil {
		return snapshots.Snapshot{}, err
	}

	s.logger.Debug("draft saved", "version", snapshot.Version, "nodes", len(snapshot.Content))
	s.events.Broadcast(Event{Kind: EventSaved, Version: snapshot.Version, At: now})
	return snapshot, nil
}

// Publish validates the current content against every registered section
// schema and, when clean, commits it to both the draft and published slots
// so the two stay in step after a publish. A ValidationError carries the
// failing paths; nothing is written in that case.
func (s *Service) Publish(ctx context.Context, actor uuid.UUID) (snapshots.Snapshot, error) {
	content := s.source.Content()
	if len(content) == 0 {
		return snapshots.Snapshot{}, ErrNothingToPublish
	}

	if fields := s.Validate(content); len(fields) > 0 {
		s.logger.Info("publish blocked by validation", "failing_paths", len(fields))
		return snapshots.Snapshot{}, &ValidationError{Fields: fields}
	}

	now := s.clock().UTC()
	snapshot := snapshots.Snapshot{
		Content: content,
		SavedAt: now,
		Version: s.version(now),
	}
	if err := s.repo.Put(ctx, snapshots.SlotDraft, snapshot); err != nil {
		return snapshots.Snapshot{}, err
	}
	if err := s.repo.Put(ctx, snapshots.SlotPublished, snapshot); err != nil {
		return snapshots.Snapshot{}, err
	}

	s.logger.Info("content published", "version", snapshot.Version, "nodes", len(snapshot.Content))
	s.events.Broadcast(Event{Kind: EventPublished, Version: snapshot.Version, At: now})
	s.recordActivity(ctx, actor, snapshot.Version)
	return snapshot, nil
}

// Validate checks each node covered by a registered section schema and
// returns failing paths with their messages. Nodes outside any registered
// section are not validated.
func (s *Service) Validate(content map[string]nodes.Node) map[string][]string {
	failures := make(map[string][]string)
	for path, node := range content {
		segments, err := contentpath.Parse(path)
		if err != nil || len(segments) < 2 {
			continue
		}
		leaf := segments[len(segments)-1]
		if leaf.IsIndex {
			continue
		}
		field, ok := s.registry.FieldFor(segments[0].Key, leaf.Key)
		if !ok {
			continue
		}
		if messages := schemainternal.ValidateField(node.Value, field); len(messages) > 0 {
			failures[path] = messages
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

// HasUnsavedChanges reports whether the draft slot has diverged from the
// published slot. With nothing published yet, any draft counts as unsaved;
// with neither slot written, nothing is unsaved.
func (s *Service) HasUnsavedChanges(ctx context.Context) (bool, error) {
	draft, err := s.repo.Get(ctx, snapshots.SlotDraft)
	if err != nil {
		var notFound *snapshots.NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}

	current, err := autosave.Fingerprint(draft.Content)
	if err != nil {
		return false, err
	}

	published, err := s.repo.Get(ctx, snapshots.SlotPublished)
	if err != nil {
		var notFound *snapshots.NotFoundError
		if errors.As(err, &notFound) {
			return len(draft.Content) > 0, nil
		}
		return false, err
	}

	base, err := autosave.Fingerprint(published.Content)
	if err != nil {
		return false, err
	}
	return current != base, nil
}

// Published returns the snapshot currently served to end users.
func (s *Service) Published(ctx context.Context) (snapshots.Snapshot, error) {
	return s.repo.Get(ctx, snapshots.SlotPublished)
}

// Draft returns the last explicitly saved snapshot.
func (s *Service) Draft(ctx context.Context) (snapshots.Snapshot, error) {
	return s.repo.Get(ctx, snapshots.SlotDraft)
}

// Subscribe delivers publish lifecycle events until ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context) (<-chan Event, error) {
	return s.events.Subscribe(ctx)
}

func (s *Service) recordActivity(ctx context.Context, actor uuid.UUID, version string) {
	if s.activity == nil {
		return
	}
	event := activity.Event{
		Verb:       "published",
		ActorID:    actor.String(),
		UserID:     actor.String(),
		ObjectType: "snapshot",
		ObjectID:   version,
		Channel:    "editor",
		OccurredAt: s.clock().UTC(),
	}
	if err := s.activity.Notify(ctx, event); err != nil {
		s.logger.Warn("recording publish activity", "error", err)
	}
}
