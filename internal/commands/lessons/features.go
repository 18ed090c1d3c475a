package lessonscmd

// FeatureGates exposes runtime feature toggles required by lesson command handlers.
// Callers should supply closures that read from curriculum.Config.Features so handlers
// stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	LessonsEnabled func() bool
	OutlineEnabled func() bool
}

func (g FeatureGates) lessonsEnabled() bool {
	if g.LessonsEnabled == nil {
		return true
	}
	return g.LessonsEnabled()
}

func (g FeatureGates) outlineEnabled() bool {
	if g.OutlineEnabled == nil {
		return true
	}
	return g.OutlineEnabled()
}
