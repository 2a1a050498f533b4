package hal

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrNack is returned by a bus when the addressed device did not acknowledge a transfer.
	ErrNack = errors.New("i2c: nack")
)

// Delay blocks for a number of platform-defined time units.
//
// There is no cancellation. The length of one unit is a configuration scalar, not a calibrated
// wall-clock duration.
type Delay interface {
	Wait(units uint32)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	// Logger is the diagnostics sink.
	Logger() Logger

	// Bus is the command/data bus the display controller hangs off.
	Bus() drivers.I2C

	// ButtonA and ButtonB are the two operator console lines. High means pressed.
	ButtonA() GPIOPin
	ButtonB() GPIOPin

	// DisplayReset is the active-low controller reset line. It may be nil.
	DisplayReset() GPIOPin

	Delay() Delay
}
