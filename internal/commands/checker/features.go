package checkercmd

// FeatureGates exposes runtime feature toggles required by checker command handlers.
// Callers should supply closures that read from curriculum.Config.Features so handlers
// stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	CheckerEnabled func() bool
}

func (g FeatureGates) checkerEnabled() bool {
	if g.CheckerEnabled == nil {
		return true
	}
	return g.CheckerEnabled()
}
