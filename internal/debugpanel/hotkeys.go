package debugpanel

// Hotkey is a panel action bound to a key, usable without the ImGui window.
type Hotkey int

const (
	HotkeyNone Hotkey = iota
	HotkeyFog
	HotkeyHelpers
	HotkeyStats
	HotkeyAnimate
	HotkeyOverview
	HotkeyNormalize
	HotkeyDump
)

// Apply runs the action behind a hotkey. It reports whether h was handled.
func (p *Panel) Apply(h Hotkey) bool {
	switch h {
	case HotkeyFog:
		p.SetFog(!p.Toggles.Fog)
	case HotkeyHelpers:
		p.SetHelpers(!p.Toggles.Helpers)
	case HotkeyStats:
		p.Toggles.Stats = !p.Toggles.Stats
	case HotkeyAnimate:
		p.SetAnimate(!p.Toggles.Animate)
	case HotkeyOverview:
		p.SetOverview(!p.Toggles.Overview)
	case HotkeyNormalize:
		p.Normalize()
	case HotkeyDump:
		p.target.DumpState()
	default:
		return false
	}
	return true
}
