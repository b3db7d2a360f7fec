package deid

// NoteKind labels the clinical note type. Optional; the zero value means
// the caller did not classify the note.
type NoteKind string

const (
	KindUnset     NoteKind = ""
	KindProgress  NoteKind = "progress"
	KindConsult   NoteKind = "consult"
	KindDischarge NoteKind = "discharge"
)

// Note is one clinical note passing through the pipeline. The pipeline
// transforms and returns it; it is never persisted here.
type Note struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Kind  NoteKind `json:"kind,omitempty"`
}
