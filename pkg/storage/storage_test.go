package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestJPEGResizer(t *testing.T) {
	r := NewJPEGResizer(100)

	out, contentType, err := r.Resize(pngOf(t, 400, 200))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	mime, err := DetectImageType(out)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)

	_, _, err = r.Resize([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, limit  int
		wantW, wantH int
	}{
		{50, 40, 100, 50, 40},
		{400, 200, 100, 100, 50},
		{200, 400, 100, 50, 100},
		{1000, 1, 100, 100, 1},
		{300, 300, 0, 300, 300},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := l.Put(context.Background(), "users/u1/photo.jpg", strings.NewReader("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/users/u1/photo.jpg", url)

	got, err := os.ReadFile(filepath.Join(dir, "users", "u1", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	url, err = l.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/etc/passwd", url, "keys cannot escape the upload dir")
}

func TestLocalDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8080")
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "users/u1/photo.jpg", strings.NewReader("data"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, l.Delete(context.Background(), "users/u1/photo.jpg"))
	_, err = os.Stat(filepath.Join(dir, "users", "u1", "photo.jpg"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.NoError(t, l.Delete(context.Background(), "users/u1/photo.jpg"), "deleting twice is fine")
}

type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestS3Put(t *testing.T) {
	client := new(MockObjectAPI)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "photos" && *in.Key == "users/u1/a.jpg" && *in.ContentType == "image/jpeg" && string(body) == "jpeg"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	store := newS3(client, S3Config{Bucket: "photos", Region: "eu-west-1"})
	url, err := store.Put(context.Background(), "users/u1/a.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com/users/u1/a.jpg", url)
	client.AssertExpectations(t)

	failing := new(MockObjectAPI)
	failing.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))
	_, err = newS3(failing, S3Config{Bucket: "photos", Endpoint: "http://minio:9000/"}).Put(context.Background(), "k", strings.NewReader(""), "image/jpeg")
	assert.Error(t, err)

	assert.Equal(t, "http://minio:9000/photos", newS3(failing, S3Config{Bucket: "photos", Endpoint: "http://minio:9000/"}).baseURL)
}

func TestS3Delete(t *testing.T) {
	client := new(MockObjectAPI)
	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Bucket == "photos" && *in.Key == "users/u1/a.jpg"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()
	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, errors.New("denied")).Once()

	store := newS3(client, S3Config{Bucket: "photos", Region: "eu-west-1"})
	require.NoError(t, store.Delete(context.Background(), "users/u1/a.jpg"))
	assert.Error(t, store.Delete(context.Background(), "users/u1/b.jpg"))
	client.AssertExpectations(t)
}
