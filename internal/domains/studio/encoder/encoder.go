//go:generate mockgen -source=encoder.go -destination=../mocks/encoder_mock.go -package=mocks
package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"studio/shared/base64"
	"studio/shared/constant"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

var (
	ErrRead     = errors.New("Could not read the uploaded image.") //nolint:stylecheck
	ErrTooLarge = errors.New("The uploaded image is too large.")   //nolint:stylecheck
)

// NotImageError reports an upload whose content is not an image.
type NotImageError struct {
	ContentType string
}

func (e *NotImageError) Error() string {
	return fmt.Sprintf("The uploaded file is %s, not an image.", e.ContentType)
}

type Result struct {
	Base64      string
	ContentType string
	Err         error
}

type Encoder interface {
	// Encode reads r in the background. The channel yields exactly one Result.
	Encode(ctx context.Context, r io.Reader) <-chan Result
}

type encoderImpl struct {
	maxBytes int64
}

func New() Encoder {
	return &encoderImpl{maxBytes: constant.RequestMaxMemory}
}

func (e *encoderImpl) Encode(ctx context.Context, r io.Reader) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		out <- e.encode(ctx, r)
	}()

	return out
}

func (e *encoderImpl) encode(ctx context.Context, r io.Reader) Result {
	if r == nil {
		return Result{Err: ErrRead}
	}

	data, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded image")

		return Result{Err: ErrRead}
	}

	if ctx.Err() != nil {
		return Result{Err: ctx.Err()}
	}

	if len(data) == 0 {
		return Result{Err: ErrRead}
	}

	if int64(len(data)) > e.maxBytes {
		return Result{Err: ErrTooLarge}
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		log.Warn().Str("content_type", mtype.String()).Msg("uploaded file is not an image")

		return Result{Err: &NotImageError{ContentType: mtype.String()}}
	}

	return Result{
		Base64:      base64.Encode(data),
		ContentType: mtype.String(),
	}
}
