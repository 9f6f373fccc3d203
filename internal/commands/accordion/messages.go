package accordioncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const (
	mountMessageType         = "accordion.mount"
	unmountMessageType       = "accordion.unmount"
	itemActionMessageType    = "accordion.item.action"
	insertEntryMessageType   = "accordion.item.insert"
	removeItemMessageType    = "accordion.item.remove"
	importEntriesMessageType = "accordion.entries.import"
)

// Item actions accepted by ItemActionCommand.
const (
	ActionOpen   = "open"
	ActionClose  = "close"
	ActionToggle = "toggle"
)

// MountCommand mounts the accordion, fetching remote entries when configured.
type MountCommand struct{}

// Type implements command.Message.
func (MountCommand) Type() string { return mountMessageType }

// UnmountCommand tears the accordion down.
type UnmountCommand struct{}

// Type implements command.Message.
func (UnmountCommand) Type() string { return unmountMessageType }

// ItemActionCommand opens, closes or toggles one item.
type ItemActionCommand struct {
	Action string `json:"action"`
	ID     int    `json:"id"`
}

// Type implements command.Message.
func (ItemActionCommand) Type() string { return itemActionMessageType }

// Validate ensures the action is known and the id well formed.
func (cmd ItemActionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Action, validation.Required, validation.In(ActionOpen, ActionClose, ActionToggle)),
		validation.Field(&cmd.ID, validation.Min(0)),
	)
}

// InsertEntryCommand synthesizes an item from Entry and places it according to
// Mode. Reference is required for the before and after modes.
type InsertEntryCommand struct {
	Mode      interfaces.PlacementMode `json:"mode"`
	Entry     interfaces.Entry         `json:"entry"`
	Reference *int                     `json:"reference,omitempty"`
}

// Type implements command.Message.
func (InsertEntryCommand) Type() string { return insertEntryMessageType }

// Validate checks the placement mode, the entry fields and the reference.
func (cmd InsertEntryCommand) Validate() error {
	needsReference := cmd.Mode == interfaces.PlaceBefore || cmd.Mode == interfaces.PlaceAfter
	if err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Mode, validation.Required, validation.In(
			interfaces.PlaceAppend,
			interfaces.PlacePrepend,
			interfaces.PlaceBefore,
			interfaces.PlaceAfter,
		)),
		validation.Field(&cmd.Reference, validation.When(needsReference, validation.NotNil), validation.Min(0)),
	); err != nil {
		return err
	}
	entry := cmd.Entry
	return validation.ValidateStruct(&entry,
		validation.Field(&entry.ID, validation.Min(0)),
		validation.Field(&entry.Header, validation.Required),
		validation.Field(&entry.Content, validation.Required),
	)
}

// RemoveItemCommand removes one item.
type RemoveItemCommand struct {
	ID int `json:"id"`
}

// Type implements command.Message.
func (RemoveItemCommand) Type() string { return removeItemMessageType }

// Validate ensures the id is well formed.
func (cmd RemoveItemCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Min(0)),
	)
}

// ImportEntriesCommand loads front-matter Markdown entries from Directory and
// saves them under Collection.
type ImportEntriesCommand struct {
	Directory  string `json:"directory"`
	Collection string `json:"collection"`
	Recursive  bool   `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ImportEntriesCommand) Type() string { return importEntriesMessageType }

// Validate ensures directory and collection are present.
func (cmd ImportEntriesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("directory"))),
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank("collection"))),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError("accordion.entries.import."+field+"_required", field+" is required")
		}
		return nil
	}
}
