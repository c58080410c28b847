package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/cmsclient"
	editorhttp "github.com/goliatone/go-editor/internal/http"
	"github.com/goliatone/go-editor/internal/logging"
	"github.com/goliatone/go-editor/internal/logging/console"
	"github.com/goliatone/go-editor/internal/logging/gologger"
	"github.com/goliatone/go-editor/internal/panel"
	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	"github.com/goliatone/go-editor/internal/richtext"
	"github.com/goliatone/go-editor/internal/runtimeconfig"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/internal/seed"
	"github.com/goliatone/go-editor/internal/selection"
	internalsnapshots "github.com/goliatone/go-editor/internal/snapshots"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/activity"
	"github.com/goliatone/go-editor/pkg/activity/usersink"
	"github.com/goliatone/go-editor/pkg/interfaces"
	"github.com/goliatone/go-editor/snapshots"
)

// Container wires the editor modules together from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsBunDB     bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	snapshotRepo internalsnapshots.Repository

	store          *registry.Store
	schemas        *schemainternal.Registry
	manager        *autosave.Manager
	autosaveCancel context.CancelFunc
	autosaveDone   chan struct{}
	releases       *publisher.Service
	panelSvc       *panel.Service
	tracker        *selection.Tracker
	renderer       interfaces.RichTextRenderer
	notifier       activity.Notifier
	cmsPages       *cmsclient.Client
	routeMgr       *urlkit.RouteManager
	activitySink   interfaces.ActivitySink
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB injects an externally managed database handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default snapshot read cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithSnapshotRepository overrides the snapshot persistence binding.
func WithSnapshotRepository(repo internalsnapshots.Repository) Option {
	return func(c *Container) {
		c.snapshotRepo = repo
	}
}

// WithActivitySink forwards publish activity to a go-users sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithRouteManager overrides the URL manager used by the CMS page client.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeMgr = manager
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if !cfg.Enabled {
		return nil, runtimeconfig.ErrEditorDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureSnapshotRepository()
	if err := c.configureContent(); err != nil {
		return nil, err
	}
	if err := c.configureAutosave(); err != nil {
		return nil, err
	}
	if err := c.configurePublishing(); err != nil {
		return nil, err
	}
	if err := c.configurePanel(); err != nil {
		return nil, err
	}
	c.configureSelection()
	c.configureRichText()
	if err := c.configureCMSClient(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}

	switch c.Config.Logging.Provider {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		options := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			options.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(options)
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.Config.Storage.Provider != "bun" || c.bunDB != nil {
		return nil
	}
	sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("di: open storage: %w", err)
	}
	c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	c.ownsBunDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureSnapshotRepository() {
	if c.snapshotRepo != nil {
		return
	}
	if c.bunDB != nil {
		if c.cacheService != nil {
			c.snapshotRepo = internalsnapshots.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			return
		}
		c.snapshotRepo = internalsnapshots.NewBunRepository(c.bunDB)
		return
	}
	c.snapshotRepo = internalsnapshots.NewMemoryRepository()
}

func (c *Container) configureContent() error {
	c.store = registry.NewStore(
		registry.WithLogger(logging.RegistryLogger(c.loggerProvider)),
	)
	c.schemas = schemainternal.NewRegistry()

	if c.Config.Seed.Defaults {
		for _, section := range seed.DefaultSections() {
			if err := c.schemas.Register(section); err != nil {
				return err
			}
		}
	}

	defaults := map[string]nodes.Node{}
	if c.Config.Seed.Defaults {
		defaults = seed.DefaultContent()
	}
	if c.Config.Features.MarkdownSeed {
		documents, err := seed.LoadDir(c.Config.Seed.MarkdownDir, c.Config.Seed.Pattern)
		if err != nil {
			return err
		}
		for id, node := range seed.Merge(documents) {
			defaults[id] = node
		}
	}

	// restore the last working copy when the repository holds one,
	// otherwise the seeded defaults win
	loader := registry.LoaderFunc(func(ctx context.Context) (map[string]nodes.Node, error) {
		for _, slot := range []snapshots.Slot{snapshots.SlotAutosave, snapshots.SlotDraft} {
			snapshot, err := c.snapshotRepo.Get(ctx, slot)
			if err == nil {
				return snapshot.Content, nil
			}
			var notFound *snapshots.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
		return nil, nil
	})
	c.store.Load(context.Background(), loader, defaults)
	return nil
}

func (c *Container) configureAutosave() error {
	manager, err := autosave.NewManager(c.snapshotRepo, c.store,
		autosave.WithDebounce(c.Config.Autosave.Debounce),
		autosave.WithLogger(logging.AutosaveLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.manager = manager

	// Every store mutation restarts the debounce window; edits made through
	// the panel or the store directly autosave without the caller's help.
	ctx, cancel := context.WithCancel(context.Background())
	events, err := c.store.Subscribe(ctx)
	if err != nil {
		cancel()
		return err
	}
	c.autosaveCancel = cancel
	c.autosaveDone = make(chan struct{})
	go func() {
		defer close(c.autosaveDone)
		for range events {
			if err := c.manager.Schedule(); err != nil {
				return
			}
		}
	}()
	return nil
}

func (c *Container) configurePublishing() error {
	if !c.Config.Features.Publishing {
		return nil
	}
	options := []publisher.Option{
		publisher.WithLogger(logging.PublisherLogger(c.loggerProvider)),
	}
	if c.Config.Features.Activity && c.activitySink != nil {
		c.notifier = usersink.Hook{Sink: c.activitySink}
		options = append(options, publisher.WithActivityNotifier(c.notifier))
	}
	service, err := publisher.NewService(c.snapshotRepo, c.store, c.schemas, options...)
	if err != nil {
		return err
	}
	c.releases = service
	return nil
}

func (c *Container) configurePanel() error {
	service, err := panel.NewService(c.store, c.schemas,
		panel.WithLogger(logging.ModuleLogger(c.loggerProvider, "panel")),
	)
	if err != nil {
		return err
	}
	c.panelSvc = service
	return nil
}

func (c *Container) configureSelection() {
	if !c.Config.Features.Selection {
		return
	}
	c.tracker = selection.NewTracker(
		selection.WithLogger(logging.ModuleLogger(c.loggerProvider, "selection")),
	)
}

func (c *Container) configureRichText() {
	c.renderer = richtext.NewGoldmarkRenderer(interfaces.RenderOptions{
		Extensions: c.Config.RichText.Extensions,
		HardWraps:  c.Config.RichText.HardWraps,
		SafeMode:   c.Config.RichText.SafeMode,
	})
}

func (c *Container) configureCMSClient() error {
	if !c.Config.Features.CMSClient {
		return nil
	}
	if c.routeMgr == nil {
		c.routeMgr = urlkit.NewRouteManager(c.Config.CMS.RouteConfig)
	}
	client, err := cmsclient.New(cmsclient.Options{
		Manager:     c.routeMgr,
		Group:       c.Config.CMS.Group,
		Route:       c.Config.CMS.Route,
		SlugParam:   c.Config.CMS.SlugParam,
		LocaleQuery: c.Config.CMS.LocaleQuery,
		Logger:      logging.CMSLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.cmsPages = client
	return nil
}

// Close releases resources the container owns. Injected handles are left to
// their owners.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.autosaveCancel != nil {
		c.autosaveCancel()
		<-c.autosaveDone
	}
	if c.manager != nil {
		c.manager.Destroy(ctx)
	}
	if c.ownsBunDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

// Store exposes the content store.
func (c *Container) Store() *registry.Store {
	return c.store
}

// SchemaRegistry exposes the section schema registry.
func (c *Container) SchemaRegistry() *schemainternal.Registry {
	return c.schemas
}

// AutosaveManager exposes the debounced save manager.
func (c *Container) AutosaveManager() *autosave.Manager {
	return c.manager
}

// PublisherService exposes the draft/publish service; nil when publishing is
// disabled.
func (c *Container) PublisherService() *publisher.Service {
	return c.releases
}

// PanelService exposes the editor panel service.
func (c *Container) PanelService() *panel.Service {
	return c.panelSvc
}

// SelectionTracker exposes the hover/selection tracker; nil when selection is
// disabled.
func (c *Container) SelectionTracker() *selection.Tracker {
	return c.tracker
}

// RichTextRenderer exposes the configured markdown renderer.
func (c *Container) RichTextRenderer() interfaces.RichTextRenderer {
	return c.renderer
}

// SnapshotRepository exposes the configured snapshot persistence.
func (c *Container) SnapshotRepository() internalsnapshots.Repository {
	return c.snapshotRepo
}

// CMSClient exposes the read-only page client; nil when the feature is off.
func (c *Container) CMSClient() *cmsclient.Client {
	return c.cmsPages
}

// RouteManager exposes the URL manager backing the CMS client.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeMgr
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the database handle; nil for in-memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// ActivityNotifier exposes the publish activity bridge; nil unless activity
// forwarding is configured.
func (c *Container) ActivityNotifier() activity.Notifier {
	return c.notifier
}

// EditorAPI builds the HTTP surface over the container's services.
func (c *Container) EditorAPI(opts ...editorhttp.EditorOption) *editorhttp.EditorAPI {
	options := []editorhttp.EditorOption{
		editorhttp.WithStore(c.store),
		editorhttp.WithSchemaRegistry(c.schemas),
		editorhttp.WithAutosaveManager(c.manager),
		editorhttp.WithPublisherService(c.releases),
		editorhttp.WithPanelService(c.panelSvc),
		editorhttp.WithSelectionTracker(c.tracker),
	}
	options = append(options, opts...)
	return editorhttp.NewEditorAPI(options...)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
