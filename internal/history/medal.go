package history

// Medal tags the top three leaderboard positions.
type Medal int

// Medal values.
const (
	MedalNone Medal = iota
	MedalGold
	MedalSilver
	MedalBronze
)

// MedalFor returns the medal for a 1-based rank.
func MedalFor(rank int) Medal {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return MedalNone
	}
}

func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "gold"
	case MedalSilver:
		return "silver"
	case MedalBronze:
		return "bronze"
	default:
		return ""
	}
}
