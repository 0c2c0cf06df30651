package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// LaserScan2D is an immutable planar laser scan: one range and one intensity
// per ray, plus the angular sweep metadata.
type LaserScan2D struct {
	data        *buffer.Buffer // float32 ranges, 1 per ray
	intensities *buffer.Buffer // float32, 1 per ray

	minDistance    float32
	maxDistance    float32
	angleIncrement float32
	angleMin       float32
	angleMax       float32
}

// LaserScanTypeName tags LaserScan2D records in the columnar representation.
const LaserScanTypeName = "LaserScan2D"

const (
	scanFieldData           = "data"
	scanFieldIntensities    = "intensities"
	scanFieldMinDistance    = "min_distance"
	scanFieldMaxDistance    = "max_distance"
	scanFieldAngleIncrement = "angle_increment"
	scanFieldAngleMin       = "angle_min"
	scanFieldAngleMax       = "angle_max"
)

// NewLaserScan2D creates a scan, taking ownership of the slices. Fails with
// ErrShapeMismatch when ranges and intensities differ in length.
func NewLaserScan2D(data, intensities []float32, minDistance, maxDistance, angleIncrement, angleMin, angleMax float32) (*LaserScan2D, error) {
	if len(data) != len(intensities) {
		return nil, fmt.Errorf("%w: %d ranges but %d intensities",
			errs.ErrShapeMismatch, len(data), len(intensities))
	}

	return &LaserScan2D{
		data:           buffer.FromFloat32(data),
		intensities:    buffer.FromFloat32(intensities),
		minDistance:    minDistance,
		maxDistance:    maxDistance,
		angleIncrement: angleIncrement,
		angleMin:       angleMin,
		angleMax:       angleMax,
	}, nil
}

// Count returns the number of rays.
func (s *LaserScan2D) Count() int {
	return s.data.Len()
}

// Data returns the range buffer.
func (s *LaserScan2D) Data() *buffer.Buffer {
	return s.data
}

// Intensities returns the intensity buffer.
func (s *LaserScan2D) Intensities() *buffer.Buffer {
	return s.intensities
}

// MinDistance returns the sensor's minimum usable range.
func (s *LaserScan2D) MinDistance() float32 { return s.minDistance }

// MaxDistance returns the sensor's maximum usable range.
func (s *LaserScan2D) MaxDistance() float32 { return s.maxDistance }

// AngleIncrement returns the angular step between consecutive rays.
func (s *LaserScan2D) AngleIncrement() float32 { return s.angleIncrement }

// AngleMin returns the sweep start angle.
func (s *LaserScan2D) AngleMin() float32 { return s.angleMin }

// AngleMax returns the sweep end angle.
func (s *LaserScan2D) AngleMax() float32 { return s.angleMax }

// AsPtr returns the raw address of the range data.
func (s *LaserScan2D) AsPtr() uintptr {
	return s.data.AsPtr()
}

// IntoColumnar projects the scan into the columnar structure. The range and
// intensity buffers move without copying; the receiver must not be used
// afterwards.
func (s *LaserScan2D) IntoColumnar() *columnar.Record {
	return columnar.NewBuilder(LaserScanTypeName).
		PushPrimitiveArray(scanFieldData, s.data).
		PushPrimitiveArray(scanFieldIntensities, s.intensities).
		PushFloat32Singleton(scanFieldMinDistance, s.minDistance).
		PushFloat32Singleton(scanFieldMaxDistance, s.maxDistance).
		PushFloat32Singleton(scanFieldAngleIncrement, s.angleIncrement).
		PushFloat32Singleton(scanFieldAngleMin, s.angleMin).
		PushFloat32Singleton(scanFieldAngleMax, s.angleMax).
		Build()
}

// LaserScanFromColumnar rebuilds a scan from a columnar record, taking
// ownership of its buffers.
func LaserScanFromColumnar(rec *columnar.Record) (*LaserScan2D, error) {
	if rec.TypeName() != LaserScanTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), LaserScanTypeName)
	}

	c := columnar.NewConsumer(rec)

	data, err := c.PrimitiveArray(scanFieldData, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	intensities, err := c.PrimitiveArray(scanFieldIntensities, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	if data.Len() != intensities.Len() {
		return nil, fmt.Errorf("%w: %d ranges but %d intensities",
			errs.ErrFieldShapeMismatch, data.Len(), intensities.Len())
	}

	scan := &LaserScan2D{data: data, intensities: intensities}
	for _, field := range []struct {
		name string
		dst  *float32
	}{
		{scanFieldMinDistance, &scan.minDistance},
		{scanFieldMaxDistance, &scan.maxDistance},
		{scanFieldAngleIncrement, &scan.angleIncrement},
		{scanFieldAngleMin, &scan.angleMin},
		{scanFieldAngleMax, &scan.angleMax},
	} {
		value, err := c.Float32Singleton(field.name)
		if err != nil {
			return nil, err
		}
		*field.dst = value
	}

	return scan, nil
}

// IntoDense exposes the range buffer as a [n] array. Zero-copy.
func (s *LaserScan2D) IntoDense() (dense.Array, error) {
	return dense.New(s.data, []int{s.Count()})
}
