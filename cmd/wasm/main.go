//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	inkletEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	inkletEngine.Set("loadDocument", js.FuncOf(loadDocument))
	inkletEngine.Set("newDocument", js.FuncOf(newDocument))
	inkletEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	inkletEngine.Set("createItem", js.FuncOf(createItem))
	inkletEngine.Set("deleteItem", js.FuncOf(deleteItem))
	inkletEngine.Set("moveItem", js.FuncOf(moveItem))
	inkletEngine.Set("resizeItem", js.FuncOf(resizeItem))
	inkletEngine.Set("rotateItem", js.FuncOf(rotateItem))
	inkletEngine.Set("rotateBackItem", js.FuncOf(rotateBackItem))
	inkletEngine.Set("flipItemHorizontal", js.FuncOf(flipItemHorizontal))
	inkletEngine.Set("flipItemVertical", js.FuncOf(flipItemVertical))
	inkletEngine.Set("insertPoint", js.FuncOf(insertPoint))
	inkletEngine.Set("removePoint", js.FuncOf(removePoint))
	inkletEngine.Set("connectPoints", js.FuncOf(connectPoints))
	inkletEngine.Set("disconnectPoints", js.FuncOf(disconnectPoints))
	inkletEngine.Set("setProperty", js.FuncOf(setProperty))
	inkletEngine.Set("setVisible", js.FuncOf(setVisible))
	inkletEngine.Set("setSelection", js.FuncOf(setSelection))
	inkletEngine.Set("undo", js.FuncOf(undo))
	inkletEngine.Set("redo", js.FuncOf(redo))

	// --- Queries (frontend ← backend) ---
	inkletEngine.Set("render", js.FuncOf(renderScene))
	inkletEngine.Set("hitTest", js.FuncOf(hitTest))
	inkletEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	inkletEngine.Set("getSelection", js.FuncOf(getSelection))
	inkletEngine.Set("getDocument", js.FuncOf(getDocument))
	inkletEngine.Set("canUndo", js.FuncOf(canUndo))
	inkletEngine.Set("canRedo", js.FuncOf(canRedo))
	inkletEngine.Set("undoLabel", js.FuncOf(undoLabel))
	inkletEngine.Set("redoLabel", js.FuncOf(redoLabel))

	// Register on global scope
	js.Global().Set("inkletEngine", inkletEngine)

	// Signal that WASM is ready
	js.Global().Set("inkletWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	if err := eng.LoadDocument(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func newDocument(this js.Value, args []js.Value) interface{} {
	name := "Untitled"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	eng.NewDocument(name)
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadSampleDocument(); err != nil {
		return fail(err)
	}
	return ok()
}

func createItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing item kind"})
	}
	id, err := eng.CreateItem(args[0].String())
	if err != nil {
		return fail(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func deleteItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing item id"})
	}
	if err := eng.DeleteItem(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func moveItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.MoveItem(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func resizeItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, pointIndex, x, y"})
	}
	if err := eng.ResizeItem(args[0].String(), args[1].Int(), args[2].Float(), args[3].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func rotateItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.RotateItem(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func rotateBackItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.RotateBackItem(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func flipItemHorizontal(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.FlipItemHorizontal(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func flipItemVertical(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.FlipItemVertical(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func insertPoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	index, err := eng.InsertPoint(args[0].String(), args[1].Float(), args[2].Float())
	if err != nil {
		return fail(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "index": index})
}

func removePoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, x, y"})
	}
	if err := eng.RemovePoint(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func connectPoints(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, pointIndex, peerId, peerPointIndex"})
	}
	if err := eng.ConnectPoints(args[0].String(), args[1].Int(), args[2].String(), args[3].Int()); err != nil {
		return fail(err)
	}
	return ok()
}

func disconnectPoints(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, pointIndex, peerId, peerPointIndex"})
	}
	if err := eng.DisconnectPoints(args[0].String(), args[1].Int(), args[2].String(), args[3].Int()); err != nil {
		return fail(err)
	}
	return ok()
}

func setProperty(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, key, valueJSON"})
	}
	if err := eng.SetProperty(args[0].String(), args[1].String(), args[2].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func setVisible(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "expected id, visible"})
	}
	if err := eng.SetVisible(args[0].String(), args[1].Bool()); err != nil {
		return fail(err)
	}
	return ok()
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}
	arr := args[0]
	ids := make([]string, arr.Length())
	for i := 0; i < arr.Length(); i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

// --- Query Handlers ---

func renderScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanRedo())
}

func undoLabel(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.UndoLabel())
}

func redoLabel(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RedoLabel())
}
