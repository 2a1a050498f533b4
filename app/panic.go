package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"oledcon/hal"
)

// recoverPanic turns a panic in the firmware into an error after logging the value and, where the
// runtime provides one, the stack.
func recoverPanic(l hal.Logger, err *error) {
	v := recover()
	if v == nil {
		return
	}
	if l != nil {
		l.WriteLineString(fmt.Sprintf("oledcon panic: %v", v))
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}
	*err = fmt.Errorf("panic: %v", v)
}
