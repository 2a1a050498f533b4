//go:build tinygo

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
)

// Board wiring (Raspberry Pi Pico).
const (
	pinUARTTX    = machine.GP0
	pinUARTRX    = machine.GP1
	pinSDA       = machine.GP4
	pinSCL       = machine.GP5
	pinOLEDReset = machine.GP9
	pinButtonA   = machine.GP14
	pinButtonB   = machine.GP15

	i2cFrequency = 400 * machine.KHz

	// spinLoopsPerUnit makes one delay unit roughly a millisecond at the default core clock.
	spinLoopsPerUnit = 25_000
)

type tinyGoHAL struct {
	logger *uartLogger
	bus    *machine.I2C
	btnA   *boardPin
	btnB   *boardPin
	reset  *boardPin
	delay  SpinDelay
}

// New returns the board HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// I2C: I2C0 on GP4 (SDA) / GP5 (SCL), 400 kHz.
// Button A (GP14) relies on an external pull-down; button B (GP15) uses the internal one.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       pinUARTTX,
		RX:       pinUARTRX,
	})
	logger := &uartLogger{uart: uart}

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: i2cFrequency,
		SDA:       pinSDA,
		SCL:       pinSCL,
	}); err != nil {
		logger.WriteLineString("hal: i2c configure: " + err.Error())
	}

	h := &tinyGoHAL{
		logger: logger,
		bus:    bus,
		btnA:   &boardPin{name: "BTN_A", pin: pinButtonA, caps: GPIOCapInput},
		btnB:   &boardPin{name: "BTN_B", pin: pinButtonB, caps: GPIOCapInput | GPIOCapPullDown},
		reset:  &boardPin{name: "OLED_RST", pin: pinOLEDReset, caps: GPIOCapOutput},
		delay:  SpinDelay{LoopsPerUnit: spinLoopsPerUnit},
	}
	_ = h.btnA.Configure(GPIOModeInput, GPIOPullNone)
	_ = h.btnB.Configure(GPIOModeInput, GPIOPullDown)
	_ = h.reset.Configure(GPIOModeOutput, GPIOPullNone)
	_ = h.reset.Write(false)
	return h
}

func (h *tinyGoHAL) Logger() Logger        { return h.logger }
func (h *tinyGoHAL) Bus() drivers.I2C      { return h.bus }
func (h *tinyGoHAL) ButtonA() GPIOPin      { return h.btnA }
func (h *tinyGoHAL) ButtonB() GPIOPin      { return h.btnB }
func (h *tinyGoHAL) DisplayReset() GPIOPin { return h.reset }
func (h *tinyGoHAL) Delay() Delay          { return h.delay }
