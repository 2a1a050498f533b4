//go:build !tinygo

package app

import "oledcon/hal"

func bootStep(h hal.HAL, msg string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString("boot: " + msg)
	}
}
