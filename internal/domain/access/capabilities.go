package access

func CapabilitiesFor(mode EditorMode) []string {
	switch mode {
	case EditorFull:
		return []string{CapCreate, CapEdit, CapDelete, CapUpload, CapContent, CapUsers}
	case EditorBasic:
		// JSON catalog endpoints only; multipart upload is admin-only
		return []string{CapCreate, CapEdit, CapDelete}
	default:
		return []string{}
	}
}
