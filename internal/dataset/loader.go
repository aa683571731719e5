package dataset

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"dtrobust/internal/schema"
)

// Details describes one named UCI dataset's file layout, grounded on
// original_source/include/UCI.h's UCI_*_DETAILS tables: a fixed row count,
// column count, label column index, and the set of columns to ignore
// (identifiers, etc.) when building feature vectors.
type Details struct {
	FileName        string
	NumRows         int
	NumCols         int
	LabelIndex      int
	IndicesToIgnore []int
	FeatureNames    []string // len == NumCols - len(IndicesToIgnore) - 1 (label); may be nil
}

func (d Details) ignored(i int) bool {
	for _, j := range d.IndicesToIgnore {
		if i == j {
			return true
		}
	}
	return false
}

// Named UCI dataset registrations, mirroring original_source's UCINames
// enum (UCI::setDetails). These are the three datasets spec.md §8's
// end-to-end scenarios name.
const (
	IRIS   = "iris"
	CANCER = "cancer"
	WINE   = "wine"
)

// Registry maps dataset name to its on-disk details. Callers loading a
// dataset not in this registry (a custom CSV) can construct Details
// directly and call Load.
var Registry = map[string]Details{
	IRIS: {
		FileName:   "iris.data",
		NumRows:    150,
		NumCols:    5,
		LabelIndex: 4,
	},
	CANCER: {
		FileName:        "breast-cancer-wisconsin.data",
		NumRows:         699,
		NumCols:         11,
		LabelIndex:      10,
		IndicesToIgnore: []int{0}, // sample id column
	},
	WINE: {
		FileName:   "wine.data",
		NumRows:    178,
		NumCols:    14,
		LabelIndex: 0,
	},
}

// Load reads prefix/details.FileName and returns the parsed rows plus the
// finite class set observed, in first-seen order. Parsing is deliberately
// lenient, per spec.md §6 and original_source/src/UCI.cpp: fewer lines than
// details.NumRows yields fewer rows without error, and a line with more or
// fewer columns than expected is parsed best-effort rather than rejected.
func Load(prefix string, details Details) ([]Row, []string, error) {
	f, err := os.Open(prefix + "/" + details.FileName)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var rows []Row
	seenClasses := make(map[string]bool)
	var classes []string

	scanner := bufio.NewScanner(f)
	linesRead := 0
	for scanner.Scan() && linesRead < details.NumRows {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		items := strings.Split(line, ",")

		var x []float64
		var y string
		for i := 0; i < details.NumCols && i < len(items); i++ {
			if details.ignored(i) {
				continue
			}
			if i == details.LabelIndex {
				y = strings.TrimSpace(items[i])
				continue
			}
			v, perr := strconv.ParseFloat(strings.TrimSpace(items[i]), 64)
			if perr != nil {
				// XXX leniency mirrors UCI.cpp: a column that fails to
				// parse is dropped from the feature vector rather than
				// aborting the whole load; SchemaMismatch surfaces later,
				// at predicate-evaluation time, if anything depends on it.
				continue
			}
			x = append(x, v)
		}

		if !seenClasses[y] {
			seenClasses[y] = true
			classes = append(classes, y)
		}
		rows = append(rows, Row{X: schema.Vector{Values: x}, Y: y})
		linesRead++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return rows, classes, nil
}

// BuildSchema derives a Schema from loaded rows: every feature is treated as
// numeric, with candidate cut points at the midpoints between consecutive
// distinct observed values (the standard decision-tree candidate-threshold
// construction; see DESIGN.md's resolution of this schema-derivation open
// question). A feature whose only observed values are {0, 1} is instead
// registered as boolean, matching spec.md §3's "boolean: predicate is
// x[i] = true" shape.
func BuildSchema(rows []Row, classes []string) schema.Schema {
	if len(rows) == 0 {
		return schema.Schema{Classes: classes}
	}
	numFeatures := len(rows[0].X.Values)
	features := make([]schema.Feature, numFeatures)
	for i := 0; i < numFeatures; i++ {
		values := make([]float64, 0, len(rows))
		isBoolean := true
		for _, r := range rows {
			if i >= len(r.X.Values) {
				continue
			}
			v := r.X.Values[i]
			values = append(values, v)
			if v != 0 && v != 1 {
				isBoolean = false
			}
		}
		if isBoolean && len(values) > 0 {
			features[i] = schema.BooleanFeature(featureName(i))
			continue
		}
		features[i] = schema.NumericFeature(featureName(i), cutPoints(values))
	}
	return schema.Schema{Features: features, Classes: classes}
}

func featureName(i int) string {
	return "x" + strconv.Itoa(i)
}

func cutPoints(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	distinct := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) < 2 {
		return nil
	}
	cuts := make([]float64, 0, len(distinct)-1)
	for i := 0; i+1 < len(distinct); i++ {
		cuts = append(cuts, (distinct[i]+distinct[i+1])/2)
	}
	return cuts
}
