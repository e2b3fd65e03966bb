package access

type Policy struct {
	Role         string     `json:"role"`
	EditorMode   EditorMode `json:"editor_mode"`
	Capabilities []string   `json:"capabilities"`
}

func ComputePolicy(role string) Policy {
	mode := EditorModeFor(role)
	return Policy{
		Role:         role,
		EditorMode:   mode,
		Capabilities: CapabilitiesFor(mode),
	}
}
