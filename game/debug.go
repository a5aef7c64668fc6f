package game

// DebugState holds global debug flags that persist across game resets
type DebugState struct {
	ShowOverlay bool // Show tick, position, window and grid stats
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{
	ShowOverlay: false,
}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
