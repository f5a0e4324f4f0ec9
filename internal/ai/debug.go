package ai

// SetDebug toggles per-turn decision logging for this manager. Turn
// rejections (stun, cooldown, mana) are frequent enough that they are only
// logged when enabled, even at debug level. Call before the first Tick.
func (m *TickManager) SetDebug(enabled bool) {
	m.debug = enabled
}

// Debug reports whether per-turn logging is on.
func (m *TickManager) Debug() bool {
	return m.debug
}
