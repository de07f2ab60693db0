package world

const (
	SandHealth = 50
	BoxHealth  = 500
)

// Block is a Rock, Sand or Box.
type Block struct {
	Base
	health int
}

func newBlock(b Base) *Block {
	blk := &Block{Base: b}
	switch b.kind {
	case KindSand:
		blk.health = SandHealth
	case KindBox:
		blk.health = BoxHealth
	}
	return blk
}

// Health is meaningful for Sand and Box only.
func (b *Block) Health() int { return b.health }

func (b *Block) movable() {}

func (b *Block) FallsUnderGravity() bool { return b.kind == KindBox }
func (b *Block) BlocksOnCollision() bool { return b.kind == KindBox }

// Damage wears Sand and Box down; Rock ignores it.
func (b *Block) Damage(n int) {
	if b.kind == KindRock || b.health <= 0 {
		return
	}
	b.health -= n
	if b.health <= 0 {
		b.world.Remove(b)
	}
}

// OnCollide pushes a box along when an actor walks into it.
func (b *Block) OnCollide(dir Direction, collisions []Unit, _ bool) {
	if b.kind != KindBox || dir == Center {
		return
	}
	if AnyMatching[*Actor](collisions) {
		b.world.Move(b, dir)
	}
}

func (b *Block) Render() View {
	switch b.kind {
	case KindSand:
		return View{Glyph: '░'}
	case KindBox:
		return View{Glyph: 'X', Bold: true}
	}
	return View{Glyph: '█'}
}
