package classify

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/proteovis/proteovis/internal/data"
)

// GeneNameSource resolves a primary ID to a UniProt-derived gene
// name. An empty return means no record or no gene name; the engine
// then falls back to the dataset's gene-name column.
type GeneNameSource interface {
	GeneName(primaryID string) string
}

// Engine runs the classification and color-assignment pipeline.
type Engine struct {
	logger  *zap.Logger
	uniprot GeneNameSource
	workers int
}

// NewEngine creates an engine with no-op logging and no UniProt source.
func NewEngine() *Engine {
	return &Engine{logger: zap.NewNop()}
}

// SetLogger sets the logger for structural warnings.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// SetGeneNameSource configures UniProt gene-name resolution, used
// when the settings enable UniProt fetching.
func (e *Engine) SetGeneNameSource(src GeneNameSource) {
	e.uniprot = src
}

// SetWorkers overrides the worker count for the per-row pass.
func (e *Engine) SetWorkers(n int) {
	e.workers = n
}

// rowClass is the outcome of classifying one row. Rows with ok=false
// are skipped entirely: they contribute nothing to the point list or
// the axis-range computation.
type rowClass struct {
	ok        bool
	id        string
	label     string
	x         float64
	y         float64
	compare   string
	explicit  []string // explicit selection groups, sorted
	synthetic string   // significance group, used when no explicit groups apply
}

// Classify converts differential rows into colored plot points.
//
// The pass has two phases with a strict ordering constraint: color
// assignment must complete for the full group-name set before any
// row's final color is read, so that one globally consistent view of
// "colors already taken" exists. Per-row classification itself is
// pure and runs on a worker pool.
func (e *Engine) Classify(rows []data.Row, form data.DifferentialForm, settings data.Settings, selections data.SelectionMap) Result {
	result := Result{
		ColorMap: AssignGroupColors(settings.ColorMap, nil, nil),
	}

	if !form.Valid() {
		e.logger.Warn("differential form is missing required columns; classification skipped",
			zap.String("primaryID", form.PrimaryIDColumn),
			zap.String("foldChange", form.FoldChangeColumn),
			zap.String("significant", form.SignificantColumn))
		return result
	}
	if len(rows) == 0 {
		return result
	}

	// Phase 1: classify every row.
	items := make(chan workItem, len(rows))
	for i, row := range rows {
		items <- workItem{seq: i, row: row}
	}
	close(items)

	classes := make([]rowClass, 0, len(rows))
	orderedCollect(e.parallelClassify(items, form, settings), func(rc rowClass) {
		classes = append(classes, rc)
	})

	// Phase 2: fix colors for every group that will appear. Explicit
	// selection groups first, then synthetic groups in row order.
	groupNames := selections.AllGroups()
	seen := make(map[string]bool, len(groupNames))
	for _, g := range groupNames {
		seen[g] = true
	}
	for _, rc := range classes {
		if rc.ok && !seen[rc.synthetic] {
			seen[rc.synthetic] = true
			groupNames = append(groupNames, rc.synthetic)
		}
	}
	result.ColorMap = AssignGroupColors(settings.ColorMap, settings.Palette(), groupNames)

	// Phase 3: emit points and track axis extents.
	var (
		minX, maxX, maxY float64
		tracked          bool
	)
	for _, rc := range classes {
		if !rc.ok {
			result.Skipped++
			continue
		}

		groups := make([]string, 0, 1)
		colors := make([]string, 0, 1)
		for _, g := range selections.GroupsFor(rc.id) {
			color, ok := result.ColorMap[g]
			if !ok {
				// Unassigned explicit groups are excluded.
				continue
			}
			groups = append(groups, g)
			colors = append(colors, color)
		}
		if len(groups) == 0 {
			color, ok := result.ColorMap[rc.synthetic]
			if !ok {
				color = data.DefaultSignificanceColor
			}
			groups = append(groups, rc.synthetic)
			colors = append(colors, color)
		}

		if !tracked {
			minX, maxX, maxY = rc.x, rc.x, rc.y
			tracked = true
		} else {
			minX = math.Min(minX, rc.x)
			maxX = math.Max(maxX, rc.x)
			maxY = math.Max(maxY, rc.y)
		}

		result.Points = append(result.Points, Point{
			PrimaryID:  rc.id,
			Label:      rc.label,
			X:          rc.x,
			Y:          rc.y,
			Comparison: rc.compare,
			Groups:     groups,
			Colors:     colors,
		})
	}

	result.Bounds = resolveBounds(settings.VolcanoAxis, minX, maxX, maxY)
	return result
}

// classifyRow extracts and classifies a single row. Pure; safe to run
// concurrently across rows.
func (e *Engine) classifyRow(row data.Row, form data.DifferentialForm, settings data.Settings) rowClass {
	id := row.Str(form.PrimaryIDColumn)
	if id == "" {
		return rowClass{}
	}

	fc, ok := row.Float(form.FoldChangeColumn)
	if !ok {
		return rowClass{}
	}
	if form.TransformFC {
		fc = math.Log2(fc)
	}
	if form.ReverseFoldChange {
		fc = -fc
	}

	sig, ok := row.Float(form.SignificantColumn)
	if !ok {
		return rowClass{}
	}
	if form.TransformSignif {
		sig = -math.Log10(sig)
	}

	if math.IsNaN(fc) || math.IsInf(fc, 0) || math.IsNaN(sig) || math.IsInf(sig, 0) {
		return rowClass{}
	}

	compare := row.Str(form.ComparisonColumn)
	if compare == "" {
		compare = "1"
	}

	return rowClass{
		ok:        true,
		id:        id,
		label:     e.resolveLabel(row, form, settings, id),
		x:         fc,
		y:         sig,
		compare:   compare,
		synthetic: SignificanceGroup(sig, fc, settings.PCutoff, settings.Log2FCCutoff, compare),
	}
}

// resolveLabel picks the display label: UniProt gene name when
// fetching is enabled and a record matches, else the configured
// gene-name column, else the primary ID itself.
func (e *Engine) resolveLabel(row data.Row, form data.DifferentialForm, settings data.Settings, id string) string {
	if settings.FetchUniprot && e.uniprot != nil {
		if name := e.uniprot.GeneName(id); name != "" {
			return name
		}
	}
	if name := row.Str(form.GeneNamesColumn); name != "" {
		return name
	}
	return id
}

// SignificanceGroup builds the synthetic group name for a row given
// its transformed significance and fold change. The string is the
// group's stable identity key for color lookup and legend grouping,
// so its exact shape must not drift:
//
//	"P-value <= 0.05;FC > 0.6 (1)"
func SignificanceGroup(transformedSig, fc, pCutoff, fcCutoff float64, comparison string) string {
	pc := formatCutoff(pCutoff)
	fcc := formatCutoff(fcCutoff)

	var pPart string
	if transformedSig < -math.Log10(pCutoff) {
		pPart = "P-value > " + pc
	} else {
		pPart = "P-value <= " + pc
	}

	var fcPart string
	if math.Abs(fc) > fcCutoff {
		fcPart = "FC > " + fcc
	} else {
		fcPart = "FC <= " + fcc
	}

	return pPart + ";" + fcPart + " (" + comparison + ")"
}

func formatCutoff(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// resolveBounds auto-sizes the plot axes from the accepted rows and
// applies explicit overrides, which always win.
func resolveBounds(axis data.Axis, minX, maxX, maxY float64) AxisBounds {
	b := AxisBounds{MinX: minX, MaxX: maxX, MinY: 0, MaxY: maxY}
	if axis.MinX != nil {
		b.MinX = *axis.MinX
	}
	if axis.MaxX != nil {
		b.MaxX = *axis.MaxX
	}
	if axis.MinY != nil {
		b.MinY = *axis.MinY
	}
	if axis.MaxY != nil {
		b.MaxY = *axis.MaxY
	}
	return b
}
