package drawing

// StyleKey identifies a style property in an item's style table.
type StyleKey string

const (
	StylePenStyle     StyleKey = "pen-style"
	StylePenColor     StyleKey = "pen-color"
	StylePenOpacity   StyleKey = "pen-opacity"
	StylePenWidth     StyleKey = "pen-width"
	StylePenCapStyle  StyleKey = "pen-cap-style"
	StylePenJoinStyle StyleKey = "pen-join-style"

	StyleBrushStyle   StyleKey = "brush-style"
	StyleBrushColor   StyleKey = "brush-color"
	StyleBrushOpacity StyleKey = "brush-opacity"
)

// Built-in fallbacks used when neither the item nor the shared sheet has a
// value. These match the values new items are seeded with.
const (
	defaultPenStyle   = "solid"
	defaultPenColor   = "#000000"
	defaultPenWidth   = 12.0
	defaultPenCap     = "round"
	defaultPenJoin    = "round"
	defaultBrushStyle = "solid"
	defaultBrushColor = "#ffffff"
)

// StyleSheet is the shared default-value table consulted by item style
// tables when a key is absent locally. It is process-wide mutable state
// with an explicit lifecycle: create one at startup, pass it into item
// construction, reset it on demand.
type StyleSheet struct {
	values map[StyleKey]any
}

// NewStyleSheet creates an empty sheet. Items seeded against an empty
// sheet fall back to their built-in values.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{values: make(map[StyleKey]any)}
}

// SetDefault sets a shared default. Already-created items are unaffected;
// they copied their resolved values at construction time.
func (s *StyleSheet) SetDefault(key StyleKey, value any) {
	s.values[key] = value
}

// Default returns the shared default for key, if set.
func (s *StyleSheet) Default(key StyleKey) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Reset drops all shared defaults.
func (s *StyleSheet) Reset() {
	s.values = make(map[StyleKey]any)
}

// StyleTable is one item's property bag. Lookups cascade: local value,
// then the shared sheet, then the caller's fallback.
type StyleTable struct {
	values   map[StyleKey]any
	defaults *StyleSheet
}

// NewStyleTable creates an empty table consulting the given sheet.
// A nil sheet is allowed; lookups then cascade straight to the fallback.
func NewStyleTable(defaults *StyleSheet) *StyleTable {
	return &StyleTable{values: make(map[StyleKey]any), defaults: defaults}
}

// SetValue overwrites the local value unconditionally.
func (t *StyleTable) SetValue(key StyleKey, value any) {
	t.values[key] = value
}

// Value returns the local value for key, if present.
func (t *StyleTable) Value(key StyleKey) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// ValueLookup resolves key without mutating the table: the local value if
// present, else the shared sheet's value, else fallback.
func (t *StyleTable) ValueLookup(key StyleKey, fallback any) any {
	if v, ok := t.values[key]; ok {
		return v
	}
	if t.defaults != nil {
		if v, ok := t.defaults.Default(key); ok {
			return v
		}
	}
	return fallback
}

// Keys returns the locally-set keys (no cascading).
func (t *StyleTable) Keys() []StyleKey {
	keys := make([]StyleKey, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	return keys
}

// seed resolves key against the current defaults and writes the result
// back as a local value. New items call this for every style property so
// they capture whatever style the user last configured; later edits to
// the shared sheet do not retroactively change them.
func (t *StyleTable) seed(key StyleKey, fallback any) {
	t.SetValue(key, t.ValueLookup(key, fallback))
}

func (t *StyleTable) seedPenAndBrush() {
	t.seed(StylePenStyle, defaultPenStyle)
	t.seed(StylePenColor, defaultPenColor)
	t.seed(StylePenOpacity, 1.0)
	t.seed(StylePenWidth, defaultPenWidth)
	t.seed(StylePenCapStyle, defaultPenCap)
	t.seed(StylePenJoinStyle, defaultPenJoin)
	t.seed(StyleBrushStyle, defaultBrushStyle)
	t.seed(StyleBrushColor, defaultBrushColor)
	t.seed(StyleBrushOpacity, 1.0)
}

// Pen describes resolved stroke settings for rendering.
type Pen struct {
	Style   string  `json:"style"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
	Cap     string  `json:"cap"`
	Join    string  `json:"join"`
}

// Brush describes resolved fill settings for rendering.
type Brush struct {
	Style   string  `json:"style"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Pen resolves the table into stroke settings.
func (t *StyleTable) Pen() Pen {
	return Pen{
		Style:   stringValue(t.ValueLookup(StylePenStyle, defaultPenStyle), defaultPenStyle),
		Color:   stringValue(t.ValueLookup(StylePenColor, defaultPenColor), defaultPenColor),
		Width:   floatValue(t.ValueLookup(StylePenWidth, defaultPenWidth), defaultPenWidth),
		Opacity: floatValue(t.ValueLookup(StylePenOpacity, 1.0), 1.0),
		Cap:     stringValue(t.ValueLookup(StylePenCapStyle, defaultPenCap), defaultPenCap),
		Join:    stringValue(t.ValueLookup(StylePenJoinStyle, defaultPenJoin), defaultPenJoin),
	}
}

// Brush resolves the table into fill settings.
func (t *StyleTable) Brush() Brush {
	return Brush{
		Style:   stringValue(t.ValueLookup(StyleBrushStyle, defaultBrushStyle), defaultBrushStyle),
		Color:   stringValue(t.ValueLookup(StyleBrushColor, defaultBrushColor), defaultBrushColor),
		Opacity: floatValue(t.ValueLookup(StyleBrushOpacity, 1.0), 1.0),
	}
}

// PenWidth resolves the effective pen width. Bounding rects expand by
// half of this value.
func (t *StyleTable) PenWidth() float64 {
	if stringValue(t.ValueLookup(StylePenStyle, defaultPenStyle), defaultPenStyle) == "none" {
		return 0
	}
	return floatValue(t.ValueLookup(StylePenWidth, defaultPenWidth), defaultPenWidth)
}

func floatValue(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	default:
		return fallback
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
