package editorcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-editor/schema"
	"github.com/google/uuid"
)

const (
	updateNodeMessageType      = "editor.node.update"
	saveDraftMessageType       = "editor.draft.save"
	publishMessageType         = "editor.content.publish"
	forceSaveMessageType       = "editor.autosave.flush"
	registerSectionMessageType = "editor.schema.register"
)

// UpdateNodeCommand stages a new value for a registered content node.
type UpdateNodeCommand struct {
	NodeID string `json:"node_id"`
	Value  any    `json:"value"`
	Label  string `json:"label,omitempty"`
}

// Type implements command.Message.
func (UpdateNodeCommand) Type() string { return updateNodeMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UpdateNodeCommand) Validate() error {
	errs := validation.Errors{}
	if m.NodeID == "" {
		errs["node_id"] = validation.NewError("editor.node.update.node_id_required", "node_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveDraftCommand persists the working content to the draft slot.
type SaveDraftCommand struct{}

// Type implements command.Message.
func (SaveDraftCommand) Type() string { return saveDraftMessageType }

// PublishCommand validates and publishes the working content. A zero ActorID
// publishes anonymously, matching the HTTP surface.
type PublishCommand struct {
	ActorID uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (PublishCommand) Type() string { return publishMessageType }

// Validate implements command.Message; every field is optional.
func (m PublishCommand) Validate() error { return nil }

// ForceSaveCommand flushes any pending autosave immediately.
type ForceSaveCommand struct{}

// Type implements command.Message.
func (ForceSaveCommand) Type() string { return forceSaveMessageType }

// RegisterSectionCommand registers or replaces a section schema.
type RegisterSectionCommand struct {
	Section schema.Section `json:"section"`
}

// Type implements command.Message.
func (RegisterSectionCommand) Type() string { return registerSectionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RegisterSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.Section.Name == "" {
		errs["section"] = validation.NewError("editor.schema.register.name_required", "section name is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
