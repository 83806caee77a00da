package data

// DefaultColorList is the default plot palette, assigned round-robin
// to conditions and classification groups.
var DefaultColorList = []string{
	"#fd7f6f", "#7eb0d5", "#b2e061", "#bd7ebe", "#ffb55a",
	"#ffee65", "#beb9db", "#fdcce5", "#8bd3c7",
}

// DefaultSignificanceColor is used for synthetic significance groups
// that have no palette assignment.
const DefaultSignificanceColor = "#cccccc"

// SampleInfo records which condition and replicate a sample column
// belongs to.
type SampleInfo struct {
	Condition string `json:"condition"`
	Replicate string `json:"replicate"`
}

// Axis holds explicit volcano-plot axis bounds. Nil fields mean
// "auto-size from the data".
type Axis struct {
	MinX *float64 `json:"minX,omitempty"`
	MaxX *float64 `json:"maxX,omitempty"`
	MinY *float64 `json:"minY,omitempty"`
	MaxY *float64 `json:"maxY,omitempty"`
}

// Settings is the per-dataset analysis configuration. The color map
// grows monotonically: reclassification adds entries but never
// removes or reassigns one.
type Settings struct {
	PCutoff          float64               `json:"pCutoff"`
	Log2FCCutoff     float64               `json:"log2FCCutoff"`
	FetchUniprot     bool                  `json:"fetchUniprot"`
	ColorMap         map[string]string     `json:"colorMap"`
	DefaultColorList []string              `json:"defaultColorList"`
	ConditionOrder   []string              `json:"conditionOrder"`
	ConditionColors  map[string]string     `json:"conditionColors"`
	SampleMap        map[string]SampleInfo `json:"sampleMap"`
	SampleOrder      map[string][]string   `json:"sampleOrder"`
	SampleVisible    map[string]bool       `json:"sampleVisible"`
	VolcanoAxis      Axis                  `json:"volcanoAxis"`
}

// NewSettings returns settings with the standard defaults.
func NewSettings() Settings {
	return Settings{
		PCutoff:          0.05,
		Log2FCCutoff:     0.6,
		ColorMap:         map[string]string{},
		DefaultColorList: append([]string(nil), DefaultColorList...),
		ConditionColors:  map[string]string{},
		SampleMap:        map[string]SampleInfo{},
		SampleOrder:      map[string][]string{},
		SampleVisible:    map[string]bool{},
	}
}

// Palette returns the configured palette, falling back to the
// built-in default when unset.
func (s Settings) Palette() []string {
	if len(s.DefaultColorList) > 0 {
		return s.DefaultColorList
	}
	return DefaultColorList
}

// Clone returns a deep copy. Engines operate on working copies so an
// invocation never mutates its caller's settings.
func (s Settings) Clone() Settings {
	out := s
	out.ColorMap = cloneStringMap(s.ColorMap)
	out.ConditionColors = cloneStringMap(s.ConditionColors)
	out.DefaultColorList = append([]string(nil), s.DefaultColorList...)
	out.ConditionOrder = append([]string(nil), s.ConditionOrder...)
	out.SampleMap = make(map[string]SampleInfo, len(s.SampleMap))
	for k, v := range s.SampleMap {
		out.SampleMap[k] = v
	}
	out.SampleOrder = make(map[string][]string, len(s.SampleOrder))
	for k, v := range s.SampleOrder {
		out.SampleOrder[k] = append([]string(nil), v...)
	}
	out.SampleVisible = make(map[string]bool, len(s.SampleVisible))
	for k, v := range s.SampleVisible {
		out.SampleVisible[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
