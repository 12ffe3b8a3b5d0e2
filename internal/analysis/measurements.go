package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gobend/internal/scene"
	"github.com/philipparndt/gobend/pkg/geometry"
)

// BendLineInfo describes one candidate bend line of a scene
type BendLineInfo struct {
	ID       scene.LineID
	Start    geometry.Vector2
	End      geometry.Vector2
	Length   float64
	Position float64 // coordinate of the line midpoint along the measurement axis
}

// MeasurementResult contains statistics of a normalized scene
type MeasurementResult struct {
	BoundingBox geometry.BoundingBox
	Extent      geometry.BoundingBox
	Dimensions  geometry.Vector2
	Shift       geometry.Vector2

	PrimitiveCount int
	SegmentCount   int
	CircleCount    int
	ArcCount       int

	TotalSegmentLength float64
	MinSegmentLength   float64
	MaxSegmentLength   float64

	BendLines []BendLineInfo
}

// AnalyzeScene collects statistics over every primitive of the scene
func AnalyzeScene(s *scene.Scene, axis scene.Axis) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:    s.Bounds(),
		Extent:         s.Extent(),
		Dimensions:     s.Bounds().Size(),
		Shift:          s.Shift(),
		PrimitiveCount: s.Len(),
		BendLines:      make([]BendLineInfo, 0),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0

	for _, p := range s.Primitives() {
		switch shape := p.Shape.(type) {
		case geometry.Segment:
			result.SegmentCount++
			length := shape.Length()
			result.TotalSegmentLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)

			if p.BendCandidate {
				result.BendLines = append(result.BendLines, BendLineInfo{
					ID:       p.ID,
					Start:    shape.Start,
					End:      shape.End,
					Length:   length,
					Position: axis.Coordinate(shape.Midpoint()),
				})
			}
		case geometry.Circle:
			result.CircleCount++
		case geometry.Arc:
			result.ArcCount++
		}
	}

	if result.SegmentCount > 0 {
		result.MinSegmentLength = minLength
		result.MaxSegmentLength = maxLength
	}

	sort.SliceStable(result.BendLines, func(i, j int) bool {
		return result.BendLines[i].Position < result.BendLines[j].Position
	})

	return result
}

// BendSpacings returns the distances between consecutive bend lines along
// the measurement axis, starting from the origin
func BendSpacings(result *MeasurementResult) []float64 {
	spacings := make([]float64, len(result.BendLines))
	prev := 0.0
	for i, line := range result.BendLines {
		spacings[i] = line.Position - prev
		prev = line.Position
	}
	return spacings
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}

// FormatVector formats a 2D vector
func FormatVector(v geometry.Vector2) string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}
