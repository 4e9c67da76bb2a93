package avatar

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		original string
		want     string
		wantErr  bool
	}{
		{original: "photo.png", want: "u1.png"},
		{original: "Holiday.Photo.JPG", want: "u1.jpg"},
		{original: "../../etc/passwd.gif", want: "u1.gif"},
		{original: "noext", wantErr: true},
		{original: "trailing.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			got, err := FileName("u1", tt.original)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoExtension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGravatarURL(t *testing.T) {
	want := "https://www.gravatar.com/avatar/743173788aa9166801df2e18f0e7ff24"
	assert.Equal(t, want, GravatarURL("a@x.com"))
	assert.Equal(t, want, GravatarURL(" A@X.com "))
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLocalStorage_StoreMovesAndOverwrites(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(t.TempDir(), "public", "avatars")

	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	first := writeTemp(t, tmp, "upload-1", "first")
	ref, err := storage.Store(context.Background(), first, "u1.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1.png", ref)
	assert.NoFileExists(t, first)

	second := writeTemp(t, tmp, "upload-2", "second")
	ref, err = storage.Store(context.Background(), second, "u1.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1.png", ref)

	data, err := os.ReadFile(filepath.Join(dir, "u1.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStorage_MissingUpload(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Store(context.Background(), "/does/not/exist", "u1.png")
	assert.Error(t, err)
}

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_Store(t *testing.T) {
	client := &fakePutObject{}
	storage := newS3Storage(client, "bucket", "")

	upload := writeTemp(t, t.TempDir(), "upload", "pixels")
	ref, err := storage.Store(context.Background(), upload, "u1.png")
	require.NoError(t, err)

	assert.Equal(t, "avatars/u1.png", ref)
	assert.Equal(t, "bucket", *client.input.Bucket)
	assert.Equal(t, "avatars/u1.png", *client.input.Key)
	assert.Equal(t, "image/png", *client.input.ContentType)
	assert.Equal(t, "pixels", client.body)
	assert.NoFileExists(t, upload)
}

func TestS3Storage_PublicBaseURL(t *testing.T) {
	storage := newS3Storage(&fakePutObject{}, "bucket", "https://cdn.example.com")

	upload := writeTemp(t, t.TempDir(), "upload", "pixels")
	ref, err := storage.Store(context.Background(), upload, "u1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/u1.jpg", ref)
}

func TestS3Storage_UploadFailureKeepsTempFile(t *testing.T) {
	storage := newS3Storage(&fakePutObject{err: errors.New("access denied")}, "bucket", "")

	upload := writeTemp(t, t.TempDir(), "upload", "pixels")
	_, err := storage.Store(context.Background(), upload, "u1.png")
	assert.Error(t, err)
	assert.FileExists(t, upload)
}
