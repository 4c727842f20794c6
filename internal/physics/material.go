package physics

// ContactMaterial sets the friction and restitution used when bodies of
// materials A and B touch. Lookup is order independent.
type ContactMaterial struct {
	A, B        *Material
	Friction    float64
	Restitution float64
}

// DefaultContact applies to pairs with no registered contact material.
var DefaultContact = ContactMaterial{Friction: 0.3, Restitution: 0}

type materialKey struct {
	a, b *Material
}

type contactTable map[materialKey]ContactMaterial

func (t contactTable) add(cm ContactMaterial) {
	t[materialKey{cm.A, cm.B}] = cm
	t[materialKey{cm.B, cm.A}] = cm
}

func (t contactTable) lookup(a, b *Material) ContactMaterial {
	if cm, ok := t[materialKey{a, b}]; ok {
		return cm
	}
	return DefaultContact
}
