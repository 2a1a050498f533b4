//go:build tinygo

package main

import (
	"oledcon/app"
	"oledcon/hal"
)

func main() {
	app.Run(hal.New())
}
