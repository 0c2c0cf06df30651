package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/errs"
)

// ImageInVideo references a single frame inside a video file by path,
// timestamp and framerate, without carrying pixel data.
type ImageInVideo struct {
	videoPath string
	timestamp float32
	framerate float32

	name *string
}

// ImageInVideoTypeName tags ImageInVideo records in the columnar
// representation.
const ImageInVideoTypeName = "ImageInVideo"

const (
	videoFieldPath      = "video_path"
	videoFieldTimestamp = "timestamp"
	videoFieldFramerate = "framerate"
	videoFieldName      = "name"
)

// NewImageInVideo creates a video frame reference.
func NewImageInVideo(videoPath string, timestamp, framerate float32, name *string) (*ImageInVideo, error) {
	if videoPath == "" {
		return nil, fmt.Errorf("%w: empty video path", errs.ErrShapeMismatch)
	}

	return &ImageInVideo{videoPath: videoPath, timestamp: timestamp, framerate: framerate, name: name}, nil
}

// VideoPath returns the path of the referenced video file.
func (v *ImageInVideo) VideoPath() string {
	return v.videoPath
}

// Timestamp returns the frame's position in seconds.
func (v *ImageInVideo) Timestamp() float32 {
	return v.timestamp
}

// Framerate returns the video framerate.
func (v *ImageInVideo) Framerate() float32 {
	return v.framerate
}

// Name returns the optional frame name.
func (v *ImageInVideo) Name() (string, bool) {
	if v.name == nil {
		return "", false
	}

	return *v.name, true
}

// IntoColumnar projects the reference into the columnar structure.
func (v *ImageInVideo) IntoColumnar() *columnar.Record {
	return columnar.NewBuilder(ImageInVideoTypeName).
		PushStringSingleton(videoFieldPath, v.videoPath).
		PushFloat32Singleton(videoFieldTimestamp, v.timestamp).
		PushFloat32Singleton(videoFieldFramerate, v.framerate).
		PushOptionalString(videoFieldName, v.name).
		Build()
}

// ImageInVideoFromColumnar rebuilds a video frame reference from a columnar
// record.
func ImageInVideoFromColumnar(rec *columnar.Record) (*ImageInVideo, error) {
	if rec.TypeName() != ImageInVideoTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), ImageInVideoTypeName)
	}

	c := columnar.NewConsumer(rec)

	path, err := c.StringSingleton(videoFieldPath)
	if err != nil {
		return nil, err
	}
	timestamp, err := c.Float32Singleton(videoFieldTimestamp)
	if err != nil {
		return nil, err
	}
	framerate, err := c.Float32Singleton(videoFieldFramerate)
	if err != nil {
		return nil, err
	}
	name, err := c.OptionalString(videoFieldName)
	if err != nil {
		return nil, err
	}

	return NewImageInVideo(path, timestamp, framerate, name)
}
