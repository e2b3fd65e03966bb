package access

type EditorMode string

const (
	EditorNone  EditorMode = "none"
	EditorBasic EditorMode = "basic"
	EditorFull  EditorMode = "full"
)

const (
	CapCreate  = "create"
	CapEdit    = "edit"
	CapDelete  = "delete"
	CapUpload  = "upload"
	CapContent = "content"
	CapUsers   = "users"
)
