package world

// Category groups kinds that share one unit struct.
type Category int

const (
	CategoryNone Category = iota
	CategoryActor
	CategoryAmmo
	CategoryBlock
	CategoryDoor
	CategoryEffect
	CategoryFluid
	CategorySwitcher
	CategoryThing
	CategoryTransport
)

// Kind selects the concrete variant of a unit.
type Kind int

const (
	KindNone Kind = iota

	KindPlayer
	KindEnemy
	KindSmallEnemy

	KindBlade
	KindBullet
	KindRocket
	KindGrenade
	KindMine
	KindDynamite

	KindRock
	KindSand
	KindBox

	KindLockedDoor
	KindAutomaticDoor

	KindBlood
	KindExplosion
	KindAppear

	KindWater
	KindGasoline

	KindPermanentSwitcher
	KindTimedSwitcher

	KindKey

	KindLadder
	KindRope
	KindElevator
	KindPushLeft
	KindPushRight
	KindTravelatorLeft
	KindTravelatorRight
	KindLift
	KindTeleport

	kindCount
)

type kindInfo struct {
	name     string
	category Category
	symbol   rune // level symbol, 0 = not placeable from a level
}

var kinds = [kindCount]kindInfo{
	KindNone: {"None", CategoryNone, 0},

	KindPlayer:     {"Player", CategoryActor, 'P'},
	KindEnemy:      {"Enemy", CategoryActor, 'E'},
	KindSmallEnemy: {"SmallEnemy", CategoryActor, 'e'},

	KindBlade:    {"Blade", CategoryAmmo, 0},
	KindBullet:   {"Bullet", CategoryAmmo, 0},
	KindRocket:   {"Rocket", CategoryAmmo, 0},
	KindGrenade:  {"Grenade", CategoryAmmo, '*'},
	KindMine:     {"Mine", CategoryAmmo, '_'},
	KindDynamite: {"Dynamite", CategoryAmmo, 'i'},

	KindRock: {"Rock", CategoryBlock, 'W'},
	KindSand: {"Sand", CategoryBlock, 'S'},
	KindBox:  {"Box", CategoryBlock, 'X'},

	KindLockedDoor:    {"LockedDoor", CategoryDoor, 'D'},
	KindAutomaticDoor: {"AutomaticDoor", CategoryDoor, 'A'},

	KindBlood:     {"Blood", CategoryEffect, 0},
	KindExplosion: {"Explosion", CategoryEffect, 0},
	KindAppear:    {"Appear", CategoryEffect, 0},

	KindWater:    {"Water", CategoryFluid, '~'},
	KindGasoline: {"Gasoline", CategoryFluid, '%'},

	KindPermanentSwitcher: {"PermanentSwitcher", CategorySwitcher, 'o'},
	KindTimedSwitcher:     {"TimedSwitcher", CategorySwitcher, '0'},

	KindKey: {"Key", CategoryThing, 'K'},

	KindLadder:          {"Ladder", CategoryTransport, 'H'},
	KindRope:            {"Rope", CategoryTransport, '-'},
	KindElevator:        {"Elevator", CategoryTransport, '^'},
	KindPushLeft:        {"PushLeft", CategoryTransport, '{'},
	KindPushRight:       {"PushRight", CategoryTransport, '}'},
	KindTravelatorLeft:  {"TravelatorLeft", CategoryTransport, '<'},
	KindTravelatorRight: {"TravelatorRight", CategoryTransport, '>'},
	KindLift:            {"Lift", CategoryTransport, '='},
	KindTeleport:        {"Teleport", CategoryTransport, 'T'},
}

var (
	kindsBySymbol = map[rune]Kind{}
	kindsByName   = map[string]Kind{}
)

func init() {
	for k := KindNone + 1; k < kindCount; k++ {
		info := kinds[k]
		kindsByName[info.name] = k
		if info.symbol != 0 {
			kindsBySymbol[info.symbol] = k
		}
	}
}

func (k Kind) valid() bool { return k > KindNone && k < kindCount }

func (k Kind) String() string {
	if k < KindNone || k >= kindCount {
		return "Unknown"
	}
	return kinds[k].name
}

// Category returns the unit category the kind belongs to.
func (k Kind) Category() Category {
	if !k.valid() {
		return CategoryNone
	}
	return kinds[k].category
}

// Symbol returns the level symbol of k, or 0 when k cannot be placed from a level.
func (k Kind) Symbol() rune {
	if !k.valid() {
		return 0
	}
	return kinds[k].symbol
}

// KindBySymbol resolves a level symbol.
func KindBySymbol(r rune) (Kind, bool) {
	k, ok := kindsBySymbol[r]
	return k, ok
}

// ParseKind resolves a kind name as produced by String.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
