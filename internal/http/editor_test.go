package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/panel"
	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/internal/selection"
	internalsnapshots "github.com/goliatone/go-editor/internal/snapshots"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
)

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

type testServices struct {
	store    *registry.Store
	manager  *autosave.Manager
	releases *publisher.Service
}

func setupEditorAPI(t *testing.T) (*http.ServeMux, testServices) {
	t.Helper()

	store := registry.NewStore()
	seedNodes := []nodes.Node{
		{ID: "hero.title", Kind: schema.KindText, Label: "Hero Title", Value: "Launch faster"},
		{ID: "hero.ctaUrl", Kind: schema.KindURL, Value: "https://example.com/signup"},
		{ID: "footer.note", Kind: schema.KindText, Value: "fine print"},
	}
	for _, node := range seedNodes {
		if err := store.Register(node); err != nil {
			t.Fatalf("register node %s: %v", node.ID, err)
		}
	}

	schemas := schemainternal.NewRegistry()
	if err := schemas.Register(schema.Section{
		Name: "hero",
		Fields: []schema.Field{
			{Name: "title", Kind: schema.KindText, Required: true, Rules: &schema.Rules{MinLength: 3}},
			{Name: "ctaUrl", Kind: schema.KindURL, Required: true},
		},
	}); err != nil {
		t.Fatalf("register section: %v", err)
	}

	repo := internalsnapshots.NewMemoryRepository()
	manager, err := autosave.NewManager(repo, store,
		autosave.WithTimerFactory(func(time.Duration, func()) autosave.Timer { return noopTimer{} }),
	)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	releases, err := publisher.NewService(repo, store, schemas)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	panelSvc, err := panel.NewService(store, schemas)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	api := NewEditorAPI(
		WithStore(store),
		WithSchemaRegistry(schemas),
		WithAutosaveManager(manager),
		WithPublisherService(releases),
		WithPanelService(panelSvc),
		WithSelectionTracker(selection.NewTracker()),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{store: store, manager: manager, releases: releases}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestEditorAPI_NodeLifecycle(t *testing.T) {
	mux, svc := setupEditorAPI(t)

	listResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/nodes", nil, http.StatusOK)
	var list []nodeResponse
	decodeJSONBody(t, listResp, &list)
	if len(list) != 3 {
		t.Fatalf("expected 3 nodes got %d", len(list))
	}

	getResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/nodes/hero.title", nil, http.StatusOK)
	var fetched nodeResponse
	decodeJSONBody(t, getResp, &fetched)
	if fetched.Value != "Launch faster" {
		t.Fatalf("expected seeded value got %v", fetched.Value)
	}

	updateBody := map[string]any{"value": "Ship sooner"}
	updateResp := doJSONRequest(t, mux, http.MethodPut, "/editor/api/nodes/hero.title", updateBody, http.StatusOK)
	var updated nodeResponse
	decodeJSONBody(t, updateResp, &updated)
	if updated.Value != "Ship sooner" {
		t.Fatalf("expected updated value got %v", updated.Value)
	}
	if !svc.manager.HasPending() {
		t.Fatalf("expected update to schedule an autosave")
	}

	node, err := svc.store.Get("hero.title")
	if err != nil {
		t.Fatalf("get node: %v", err)
	}
	if node.Value != "Ship sooner" {
		t.Fatalf("expected store to hold new value got %v", node.Value)
	}

	doJSONRequest(t, mux, http.MethodGet, "/editor/api/nodes/missing.node", nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodPut, "/editor/api/nodes/missing.node", updateBody, http.StatusNotFound)
}

func TestEditorAPI_NodeRegister(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	body := map[string]any{
		"id":    "hero.subtitle",
		"kind":  "text",
		"label": "Hero Subtitle",
		"value": "Everything in one place",
	}
	resp := doJSONRequest(t, mux, http.MethodPost, "/editor/api/nodes", body, http.StatusCreated)
	var created nodeResponse
	decodeJSONBody(t, resp, &created)
	if created.ID != "hero.subtitle" || created.Kind != schema.KindText {
		t.Fatalf("unexpected created node %+v", created)
	}

	badKind := map[string]any{"id": "hero.x", "kind": "mystery"}
	doJSONRequest(t, mux, http.MethodPost, "/editor/api/nodes", badKind, http.StatusBadRequest)
}

func TestEditorAPI_NodeUpdateValidation(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPut, "/editor/api/nodes/hero.title",
		map[string]any{"value": ""}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if len(failure.Fields["hero.title"]) == 0 {
		t.Fatalf("expected issues for hero.title got %+v", failure.Fields)
	}

	// nodes outside registered sections are not gated
	doJSONRequest(t, mux, http.MethodPut, "/editor/api/nodes/footer.note",
		map[string]any{"value": ""}, http.StatusOK)
}

func TestEditorAPI_NodeDescriptor(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	resp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/nodes/hero.title/descriptor", nil, http.StatusOK)
	var descriptor descriptorResponse
	decodeJSONBody(t, resp, &descriptor)
	if descriptor.Control != string(panel.ControlInput) {
		t.Fatalf("expected input control got %q", descriptor.Control)
	}
	if descriptor.Field == nil || descriptor.Field.Name != "title" {
		t.Fatalf("expected declared field got %+v", descriptor.Field)
	}
}

func TestEditorAPI_SectionRoutes(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	body := schema.Section{
		Name: "pricing",
		Fields: []schema.Field{
			{Name: "headline", Kind: schema.KindText, Required: true},
		},
	}
	doJSONRequest(t, mux, http.MethodPost, "/editor/api/sections", body, http.StatusCreated)

	listResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/sections", nil, http.StatusOK)
	var sections []schema.Section
	decodeJSONBody(t, listResp, &sections)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections got %d", len(sections))
	}

	getResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/sections/pricing", nil, http.StatusOK)
	var fetched schema.Section
	decodeJSONBody(t, getResp, &fetched)
	if fetched.Name != "pricing" {
		t.Fatalf("expected pricing got %q", fetched.Name)
	}

	doJSONRequest(t, mux, http.MethodGet, "/editor/api/sections/unknown", nil, http.StatusNotFound)

	invalid := schema.Section{Fields: []schema.Field{{Name: "x", Kind: schema.KindText}}}
	doJSONRequest(t, mux, http.MethodPost, "/editor/api/sections", invalid, http.StatusBadRequest)
}

func TestEditorAPI_PublishGate(t *testing.T) {
	mux, svc := setupEditorAPI(t)

	// empty the required title so publish is blocked
	svc.store.Update("hero.title", nodes.Patch{Value: "", SetValue: true})

	blocked := doJSONRequest(t, mux, http.MethodPost, "/editor/api/publish",
		map[string]any{}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, blocked, &failure)
	if len(failure.Fields["hero.title"]) == 0 {
		t.Fatalf("expected hero.title issues got %+v", failure.Fields)
	}

	svc.store.Update("hero.title", nodes.Patch{Value: "Launch faster", SetValue: true})

	published := doJSONRequest(t, mux, http.MethodPost, "/editor/api/publish",
		map[string]any{}, http.StatusCreated)
	var snapshot snapshotResponse
	decodeJSONBody(t, published, &snapshot)
	if snapshot.Version == "" {
		t.Fatalf("expected published version")
	}

	liveResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/published", nil, http.StatusOK)
	var live snapshotResponse
	decodeJSONBody(t, liveResp, &live)
	if len(live.Content) != 3 {
		t.Fatalf("expected 3 published nodes got %d", len(live.Content))
	}

	status := doJSONRequest(t, mux, http.MethodGet, "/editor/api/status", nil, http.StatusOK)
	var state statusResponse
	decodeJSONBody(t, status, &state)
	if state.PublishedVersion != snapshot.Version {
		t.Fatalf("expected published version %q got %q", snapshot.Version, state.PublishedVersion)
	}
	if state.UnsavedChanges {
		t.Fatalf("expected no unsaved changes right after publish")
	}
}

func TestEditorAPI_PublishInvalidActor(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	doJSONRequest(t, mux, http.MethodPost, "/editor/api/publish",
		map[string]any{"actor_id": "not-a-uuid"}, http.StatusBadRequest)
}

func TestEditorAPI_DraftRoutes(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	doJSONRequest(t, mux, http.MethodGet, "/editor/api/draft", nil, http.StatusNotFound)

	saved := doJSONRequest(t, mux, http.MethodPost, "/editor/api/draft", nil, http.StatusCreated)
	var snapshot snapshotResponse
	decodeJSONBody(t, saved, &snapshot)
	if snapshot.Version == "" {
		t.Fatalf("expected draft version")
	}

	draftResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/draft", nil, http.StatusOK)
	var draft snapshotResponse
	decodeJSONBody(t, draftResp, &draft)
	if len(draft.Content) != 3 {
		t.Fatalf("expected 3 draft nodes got %d", len(draft.Content))
	}
}

func TestEditorAPI_AutosaveFlush(t *testing.T) {
	mux, svc := setupEditorAPI(t)

	doJSONRequest(t, mux, http.MethodPut, "/editor/api/nodes/hero.title",
		map[string]any{"value": "New headline"}, http.StatusOK)

	flushResp := doJSONRequest(t, mux, http.MethodPost, "/editor/api/autosave/flush", nil, http.StatusOK)
	var result map[string]any
	decodeJSONBody(t, flushResp, &result)
	if result["version"] == "" {
		t.Fatalf("expected flush version got %+v", result)
	}
	if svc.manager.HasPending() {
		t.Fatalf("expected no pending autosave after flush")
	}
}

func TestEditorAPI_SelectionRoutes(t *testing.T) {
	mux, _ := setupEditorAPI(t)

	stateResp := doJSONRequest(t, mux, http.MethodGet, "/editor/api/selection", nil, http.StatusOK)
	var state selectionStateResponse
	decodeJSONBody(t, stateResp, &state)
	if !state.Enabled || state.Hovered != "" || state.Selected != "" {
		t.Fatalf("unexpected initial state %+v", state)
	}

	hoverResp := doJSONRequest(t, mux, http.MethodPost, "/editor/api/selection/hover",
		map[string]any{"id": "hero.title"}, http.StatusOK)
	var hovered selectionStateResponse
	decodeJSONBody(t, hoverResp, &hovered)
	if hovered.Hovered != "hero.title" {
		t.Fatalf("expected hover hero.title got %q", hovered.Hovered)
	}

	selectResp := doJSONRequest(t, mux, http.MethodPost, "/editor/api/selection/select",
		map[string]any{"id": "hero.title"}, http.StatusOK)
	var selected selectionStateResponse
	decodeJSONBody(t, selectResp, &selected)
	if selected.Selected != "hero.title" {
		t.Fatalf("expected selection hero.title got %q", selected.Selected)
	}

	disableResp := doJSONRequest(t, mux, http.MethodPost, "/editor/api/selection/enabled",
		map[string]any{"enabled": false}, http.StatusOK)
	// fresh target: cleared fields are omitted from the payload
	var disabled selectionStateResponse
	decodeJSONBody(t, disableResp, &disabled)
	if disabled.Enabled || disabled.Hovered != "" || disabled.Selected != "" {
		t.Fatalf("expected disable to clear state got %+v", disabled)
	}
}
