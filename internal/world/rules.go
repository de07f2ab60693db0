package world

func (w *World) ammoDamage(kind Kind, base int) int {
	if w.rules == nil {
		return base
	}
	return w.rules.AmmoDamage(kind, base)
}

func (w *World) contactDamage(kind Kind, base int) int {
	if w.rules == nil {
		return base
	}
	return w.rules.ContactDamage(kind, base)
}
