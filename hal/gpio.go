package hal

import "fmt"

// GPIOMode is the direction of a line.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull is the bias of an input line. The console buttons are active high, so the only bias the
// board uses is a pull-down.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullDown
)

// GPIOCaps declares what a line supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullDown
)

// GPIOPin is one digital line: a console button or the panel reset.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// checkConfig reports whether a line with caps can take mode and pull. Outputs take no bias.
func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: %s: output unsupported", name)
		}
		if pull != GPIOPullNone {
			return fmt.Errorf("gpio: %s: output takes no pull", name)
		}
	default:
		return fmt.Errorf("gpio: %s: invalid mode %d", name, mode)
	}
	switch pull {
	case GPIOPullNone:
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: %s: invalid pull %d", name, pull)
	}
	return nil
}
