package editorcmd

import (
	"context"
	"fmt"

	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/commands"
	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/interfaces"
)

// UpdateNodeHandler applies node edits through the registry store using the
// shared command handler foundation.
type UpdateNodeHandler struct {
	inner *commands.Handler[UpdateNodeCommand]
}

// NewUpdateNodeHandler constructs a handler wired to the provided store. The
// autosave manager, when given, reschedules after every applied edit.
func NewUpdateNodeHandler(store *registry.Store, manager *autosave.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateNodeCommand]) *UpdateNodeHandler {
	exec := func(ctx context.Context, msg UpdateNodeCommand) error {
		patch := nodes.Patch{Value: msg.Value, SetValue: true}
		if msg.Label != "" {
			label := msg.Label
			patch.Label = &label
		}
		if !store.Update(msg.NodeID, patch) {
			return &registry.NotFoundError{ID: msg.NodeID}
		}
		if manager != nil {
			return manager.Schedule()
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateNodeCommand]{
		commands.WithLogger[UpdateNodeCommand](logger),
		commands.WithOperation[UpdateNodeCommand]("node.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateNodeHandler{
		inner: commands.NewHandler[UpdateNodeCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateNodeCommand].Execute.
func (h *UpdateNodeHandler) Execute(ctx context.Context, msg UpdateNodeCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SaveDraftHandler persists the working content via the publish gate.
type SaveDraftHandler struct {
	inner *commands.Handler[SaveDraftCommand]
}

// NewSaveDraftHandler constructs a handler wired to the provided publisher service.
func NewSaveDraftHandler(service *publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDraftCommand]) *SaveDraftHandler {
	exec := func(ctx context.Context, _ SaveDraftCommand) error {
		_, err := service.Save(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveDraftCommand]{
		commands.WithLogger[SaveDraftCommand](logger),
		commands.WithOperation[SaveDraftCommand]("draft.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveDraftHandler{
		inner: commands.NewHandler[SaveDraftCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveDraftCommand].Execute.
func (h *SaveDraftHandler) Execute(ctx context.Context, msg SaveDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishHandler publishes the working content via the publish gate.
type PublishHandler struct {
	inner *commands.Handler[PublishCommand]
}

// NewPublishHandler constructs a handler wired to the provided publisher service.
func NewPublishHandler(service *publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishCommand]) *PublishHandler {
	exec := func(ctx context.Context, msg PublishCommand) error {
		_, err := service.Publish(ctx, msg.ActorID)
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishCommand]{
		commands.WithLogger[PublishCommand](logger),
		commands.WithOperation[PublishCommand]("content.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishHandler{
		inner: commands.NewHandler[PublishCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishCommand].Execute.
func (h *PublishHandler) Execute(ctx context.Context, msg PublishCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ForceSaveHandler flushes the autosave manager immediately.
type ForceSaveHandler struct {
	inner *commands.Handler[ForceSaveCommand]
}

// NewForceSaveHandler constructs a handler wired to the provided autosave manager.
func NewForceSaveHandler(manager *autosave.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[ForceSaveCommand]) *ForceSaveHandler {
	exec := func(ctx context.Context, _ ForceSaveCommand) error {
		result := manager.ForceSave(ctx)
		if result.Err != nil {
			return fmt.Errorf("force save: %w", result.Err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ForceSaveCommand]{
		commands.WithLogger[ForceSaveCommand](logger),
		commands.WithOperation[ForceSaveCommand]("autosave.flush"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ForceSaveHandler{
		inner: commands.NewHandler[ForceSaveCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ForceSaveCommand].Execute.
func (h *ForceSaveHandler) Execute(ctx context.Context, msg ForceSaveCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RegisterSectionHandler registers section schemas for the publish gate.
type RegisterSectionHandler struct {
	inner *commands.Handler[RegisterSectionCommand]
}

// NewRegisterSectionHandler constructs a handler wired to the schema registry.
func NewRegisterSectionHandler(schemas *schemainternal.Registry, logger interfaces.Logger, opts ...commands.HandlerOption[RegisterSectionCommand]) *RegisterSectionHandler {
	exec := func(_ context.Context, msg RegisterSectionCommand) error {
		return schemas.Register(msg.Section)
	}

	handlerOpts := []commands.HandlerOption[RegisterSectionCommand]{
		commands.WithLogger[RegisterSectionCommand](logger),
		commands.WithOperation[RegisterSectionCommand]("schema.register"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RegisterSectionHandler{
		inner: commands.NewHandler[RegisterSectionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RegisterSectionCommand].Execute.
func (h *RegisterSectionHandler) Execute(ctx context.Context, msg RegisterSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
