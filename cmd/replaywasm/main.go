//go:build js && wasm

package main

import (
	"syscall/js"

	"iowa-lite/replay"
)

func main() {
	js.Global().Set("__replayInit", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return string(replay.MustJSON(replay.Response{
				OK:    false,
				Error: &replay.ReplayError{StepIndex: -1, Reason: "invalid_request", Message: "missing request payload"},
			}))
		}
		resp := replay.HandleRequest([]byte(args[0].String()))
		return string(replay.MustJSON(resp))
	}))

	select {}
}
