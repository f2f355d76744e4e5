package game

// Mode is what a left click does to the picked particle.
type Mode uint8

const (
	ModeGrab Mode = iota
	ModeTear
	ModePin
	ModeUnpin
	ModeIgnite
	numModes
)

var modeNames = [numModes]string{"grab", "tear", "pin", "unpin", "ignite"}

func (m Mode) String() string {
	if m >= numModes {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode maps a config name to a Mode, defaulting to ModeGrab.
func ParseMode(s string) Mode {
	for i, name := range modeNames {
		if name == s {
			return Mode(i)
		}
	}
	return ModeGrab
}

// ModeNames returns the mode names in Mode order.
func ModeNames() []string {
	return modeNames[:]
}
