package encoder_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"studio/internal/domains/studio/encoder"
	"testing"

	"github.com/stretchr/testify/assert"
)

// smallest valid PNG header followed by an IHDR chunk
var pngHeader = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk error")
}

func TestEncoder_Encode(t *testing.T) {
	tests := []struct {
		name            string
		reader          io.Reader
		wantContentType string
		wantErr         error
		wantNotImage    bool
	}{
		{name: "png", reader: bytes.NewReader(pngHeader), wantContentType: "image/png"},
		{name: "plain text", reader: bytes.NewReader([]byte("hello world")), wantNotImage: true},
		{name: "empty", reader: bytes.NewReader(nil), wantErr: encoder.ErrRead},
		{name: "read failure", reader: failingReader{}, wantErr: encoder.ErrRead},
		{name: "nil reader", reader: nil, wantErr: encoder.ErrRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := <-encoder.New().Encode(context.Background(), tt.reader)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, res.Err, tt.wantErr)
			case tt.wantNotImage:
				var notImage *encoder.NotImageError
				assert.ErrorAs(t, res.Err, &notImage)
				assert.Contains(t, res.Err.Error(), "not an image")
			default:
				assert.NoError(t, res.Err)
				assert.Equal(t, tt.wantContentType, res.ContentType)
				assert.NotEmpty(t, res.Base64)
			}
		})
	}
}

func TestEncoder_Encode_ClosesChannel(t *testing.T) {
	ch := encoder.New().Encode(context.Background(), bytes.NewReader(pngHeader))

	<-ch
	_, open := <-ch
	assert.False(t, open)
}
