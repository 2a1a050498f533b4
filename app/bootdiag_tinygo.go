//go:build tinygo && bootdebug

package app

import (
	"machine"

	"oledcon/hal"
)

// bootStep logs the boot phase on the diagnostics UART and mirrors it to USB CDC, so early boot can
// be followed without a separate UART adapter.
func bootStep(h hal.HAL, msg string) {
	line := "boot: " + msg
	if l := h.Logger(); l != nil {
		l.WriteLineString(line)
	}
	if usb := machine.USBCDC; usb != nil {
		_, _ = usb.Write([]byte(line + "\r\n"))
	}
}
