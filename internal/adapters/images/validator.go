package images

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Limits are the externally configured photo upload constraints.
type Limits struct {
	MaxSizeMB int
	MinWidth  int
	MinHeight int
}

// ValidationError is a field-level upload failure naming the violated limit.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validator checks and stores uploaded photos.
type Validator struct {
	limits Limits
	dir    string
}

// NewValidator returns a Validator storing accepted photos under dir.
func NewValidator(limits Limits, dir string) *Validator {
	return &Validator{limits: limits, dir: dir}
}

// SavePhoto validates the uploaded image against the configured limits and
// writes it to the upload directory, returning the stored file name.
//
// The size check runs only when the header reports a size; a failed size
// probe skips the check rather than failing the upload. The dimension check
// decodes the image, so an undecodable file is rejected.
func (v *Validator) SavePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header != nil && header.Size > 0 {
		if header.Size > int64(v.limits.MaxSizeMB)*1024*1024 {
			return "", &ValidationError{msg: fmt.Sprintf("maximum size is %d MB", v.limits.MaxSizeMB)}
		}
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", &ValidationError{msg: "file is not a supported image"}
	}
	bounds := img.Bounds()
	if bounds.Dx() < v.limits.MinWidth || bounds.Dy() < v.limits.MinHeight {
		return "", &ValidationError{msg: fmt.Sprintf("minimum dimension is %d x %d", v.limits.MinWidth, v.limits.MinHeight)}
	}

	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(v.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return name, nil
}
