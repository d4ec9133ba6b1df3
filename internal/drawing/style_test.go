package drawing

import "testing"

func TestValueLookupCascade(t *testing.T) {
	sheet := NewStyleSheet()
	sheet.SetDefault(StylePenColor, "#112233")

	table := NewStyleTable(sheet)

	tests := []struct {
		name     string
		setup    func()
		key      StyleKey
		fallback any
		want     any
	}{
		{
			"sheet value",
			func() {},
			StylePenColor, "#000000", "#112233",
		},
		{
			"fallback when absent everywhere",
			func() {},
			StylePenWidth, 12.0, 12.0,
		},
		{
			"local value wins over sheet",
			func() { table.SetValue(StylePenColor, "#ff0000") },
			StylePenColor, "#000000", "#ff0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			if got := table.ValueLookup(tt.key, tt.fallback); got != tt.want {
				t.Errorf("ValueLookup(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestValueLookupDoesNotWriteBack(t *testing.T) {
	sheet := NewStyleSheet()
	sheet.SetDefault(StylePenWidth, 4.0)
	table := NewStyleTable(sheet)

	table.ValueLookup(StylePenWidth, 1.0)

	if _, ok := table.Value(StylePenWidth); ok {
		t.Error("ValueLookup materialized a local value")
	}
}

func TestSeedCapturesSheetValueAtConstruction(t *testing.T) {
	sheet := NewStyleSheet()
	sheet.SetDefault(StylePenColor, "#aa0000")

	item := NewRectItem(sheet)

	// The item captured the sheet value as its own.
	if v, ok := item.Style().Value(StylePenColor); !ok || v != "#aa0000" {
		t.Fatalf("seeded pen color = %v (present=%v), want #aa0000", v, ok)
	}

	// Later sheet edits do not reach into already-built items.
	sheet.SetDefault(StylePenColor, "#00bb00")
	if got := item.Style().Pen().Color; got != "#aa0000" {
		t.Errorf("pen color after sheet edit = %q, want %q", got, "#aa0000")
	}
}

func TestSeedFallsBackToBuiltins(t *testing.T) {
	item := NewRectItem(NewStyleSheet())
	pen := item.Style().Pen()

	if pen.Style != defaultPenStyle || pen.Color != defaultPenColor || pen.Width != defaultPenWidth {
		t.Errorf("pen = %+v, want built-in defaults", pen)
	}
	brush := item.Style().Brush()
	if brush.Style != defaultBrushStyle || brush.Color != defaultBrushColor {
		t.Errorf("brush = %+v, want built-in defaults", brush)
	}
}

func TestNilSheetIsAllowed(t *testing.T) {
	item := NewLineItem(nil)
	if got := item.Style().Pen().Width; got != defaultPenWidth {
		t.Errorf("pen width with nil sheet = %v, want %v", got, defaultPenWidth)
	}
}

func TestPenWidthZeroWhenPenStyleNone(t *testing.T) {
	table := NewStyleTable(nil)
	table.SetValue(StylePenStyle, "none")
	table.SetValue(StylePenWidth, 9.0)

	if got := table.PenWidth(); got != 0 {
		t.Errorf("PenWidth with pen-style none = %v, want 0", got)
	}
}

func TestSheetReset(t *testing.T) {
	sheet := NewStyleSheet()
	sheet.SetDefault(StylePenWidth, 3.0)
	sheet.Reset()

	if _, ok := sheet.Default(StylePenWidth); ok {
		t.Error("default survived Reset")
	}
}
