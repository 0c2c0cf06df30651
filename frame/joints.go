package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// JointsPosition is an immutable set of named joint positions with a
// Logical/Physical reference frame tag.
type JointsPosition struct {
	joints    []string
	positions *buffer.Buffer // float32, 1 per joint

	encoding format.JointEncoding
}

// JointsTypeName tags JointsPosition records in the columnar representation.
const JointsTypeName = "JointsPosition"

const (
	jointsFieldJoints    = "joints"
	jointsFieldPositions = "positions"
	jointsFieldEncoding  = "encoding"
)

// NewJointsPosition creates a joint set, taking ownership of the slices.
// Fails with ErrShapeMismatch when names and positions differ in length.
func NewJointsPosition(joints []string, positions []float32, encoding format.JointEncoding) (*JointsPosition, error) {
	if _, err := format.ParseJointEncoding(encoding.String()); err != nil {
		return nil, err
	}
	if len(joints) != len(positions) {
		return nil, fmt.Errorf("%w: %d joint names but %d positions",
			errs.ErrShapeMismatch, len(joints), len(positions))
	}

	return &JointsPosition{joints: joints, positions: buffer.FromFloat32(positions), encoding: encoding}, nil
}

// Count returns the number of joints.
func (j *JointsPosition) Count() int {
	return len(j.joints)
}

// Joints returns the joint names. The slice is shared; callers must not
// modify it.
func (j *JointsPosition) Joints() []string {
	return j.joints
}

// Positions returns the position buffer.
func (j *JointsPosition) Positions() *buffer.Buffer {
	return j.positions
}

// Encoding returns the reference frame tag.
func (j *JointsPosition) Encoding() format.JointEncoding {
	return j.encoding
}

// IntoColumnar projects the joint set into the columnar structure. The
// position buffer moves without copying; the receiver must not be used
// afterwards.
func (j *JointsPosition) IntoColumnar() *columnar.Record {
	return columnar.NewBuilder(JointsTypeName).
		PushStringArray(jointsFieldJoints, j.joints).
		PushPrimitiveArray(jointsFieldPositions, j.positions).
		PushStringSingleton(jointsFieldEncoding, j.encoding.String()).
		Build()
}

// JointsFromColumnar rebuilds a joint set from a columnar record, taking
// ownership of its position buffer.
func JointsFromColumnar(rec *columnar.Record) (*JointsPosition, error) {
	if rec.TypeName() != JointsTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), JointsTypeName)
	}

	c := columnar.NewConsumer(rec)

	joints, err := c.StringArray(jointsFieldJoints)
	if err != nil {
		return nil, err
	}
	positions, err := c.PrimitiveArray(jointsFieldPositions, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	encodingTag, err := c.StringSingleton(jointsFieldEncoding)
	if err != nil {
		return nil, err
	}
	encoding, err := format.ParseJointEncoding(encodingTag)
	if err != nil {
		return nil, err
	}
	if len(joints) != positions.Len() {
		return nil, fmt.Errorf("%w: %d joint names but %d positions",
			errs.ErrFieldShapeMismatch, len(joints), positions.Len())
	}

	return &JointsPosition{joints: joints, positions: positions, encoding: encoding}, nil
}

// IntoDense exposes the position buffer as a [n] array. Zero-copy.
func (j *JointsPosition) IntoDense() (dense.Array, error) {
	return dense.New(j.positions, []int{j.Count()})
}
