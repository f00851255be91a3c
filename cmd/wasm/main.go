//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

var (
	conv pathdata.Converter
	eng  *engine.Engine
)

func main() {
	eng = engine.NewEngine(conv)

	// Create the engine API object
	pathconvEngine := js.Global().Get("Object").New()

	// --- Stateless ---
	pathconvEngine.Set("formatPath", js.FuncOf(formatPath))
	pathconvEngine.Set("convertPath", js.FuncOf(convertPath))

	// --- Commands (frontend → engine) ---
	pathconvEngine.Set("setPath", js.FuncOf(setPath))
	pathconvEngine.Set("setTransform", js.FuncOf(setTransform))
	pathconvEngine.Set("setStyle", js.FuncOf(setStyle))

	// --- Queries (frontend ← engine) ---
	pathconvEngine.Set("render", js.FuncOf(render))
	pathconvEngine.Set("getBounds", js.FuncOf(getBounds))
	pathconvEngine.Set("getFormatted", js.FuncOf(getFormatted))

	// Register on global scope
	js.Global().Set("pathconvEngine", pathconvEngine)

	// Signal that WASM is ready
	js.Global().Set("pathconvWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error":  err.Error(),
		"kind":   pathdata.Kind(err),
		"offset": pathdata.Offset(err),
	})
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what})
}

// --- Stateless ---

func formatPath(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("path data")
	}

	formatted, err := conv.Format(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"formatted": formatted})
}

// convertPath returns the Canvas2D commands for a path as JSON without
// touching the engine's current path.
func convertPath(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("path data")
	}

	prims, err := conv.Convert(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	data, err := json.Marshal(engine.FromPrimitives(prims))
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"path": string(data)})
}

// --- Command Handlers ---

func setPath(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("path data")
	}

	if err := eng.SetPath(args[0].String()); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setTransform(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("transform JSON")
	}

	t := engine.IdentityTransform()
	if err := json.Unmarshal([]byte(args[0].String()), &t); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	eng.SetTransform(t)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("style JSON")
	}

	var s engine.Style
	if err := json.Unmarshal([]byte(args[0].String()), &s); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	eng.SetStyle(s)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func getBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetBounds())
}

func getFormatted(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Formatted())
}
