package entities

// Viewer is the caller identity attached by the upstream session layer.
// The zero value is an anonymous, non-premium viewer.
type Viewer struct {
	Email     string
	IsPremium bool
}

// Anonymous reports whether the viewer carries no identity.
func (v Viewer) Anonymous() bool {
	return v.Email == ""
}

// Tier returns the viewer's access tier as it appears in lesson access
// levels.
func (v Viewer) Tier() string {
	if v.IsPremium {
		return AccessPremium
	}
	return AccessFree
}
