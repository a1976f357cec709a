package broker

const (
	NotebookEventsSubject = "notebook.events"
	SectionEventsSubject  = "section.events"
	PageEventsSubject     = "page.events"
	TrashEventsSubject    = "trash.events"
)

// SubjectForEntity maps an event-log entity name to its NATS subject.
// Unknown entities land on the trash subject rather than being dropped.
func SubjectForEntity(entity string) string {
	switch entity {
	case "notebook":
		return NotebookEventsSubject
	case "section":
		return SectionEventsSubject
	case "page":
		return PageEventsSubject
	default:
		return TrashEventsSubject
	}
}
