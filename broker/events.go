package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	NotebookCreated  EventType = "notebook.created"
	NotebookUpdated  EventType = "notebook.updated"
	NotebookMoved    EventType = "notebook.moved"
	NotebookDeleted  EventType = "notebook.deleted"
	NotebookRestored EventType = "notebook.restored"
	NotebookPurged   EventType = "notebook.purged"

	SectionCreated  EventType = "section.created"
	SectionUpdated  EventType = "section.updated"
	SectionMoved    EventType = "section.moved"
	SectionDeleted  EventType = "section.deleted"
	SectionRestored EventType = "section.restored"
	SectionPurged   EventType = "section.purged"

	PageCreated  EventType = "page.created"
	PageUpdated  EventType = "page.updated"
	PageMoved    EventType = "page.moved"
	PageDeleted  EventType = "page.deleted"
	PageRestored EventType = "page.restored"
	PagePurged   EventType = "page.purged"

	// Trash events
	TrashEmptied EventType = "trash.emptied"
)
