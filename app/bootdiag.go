//go:build tinygo && !bootdebug

package app

import "oledcon/hal"

func bootStep(h hal.HAL, msg string) {}
