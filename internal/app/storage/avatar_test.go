package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/pkg/errs"
)

func TestValidateFileSize(t *testing.T) {
	assert.Nil(t, ValidateFileSize(1024))
	assert.Nil(t, ValidateFileSize(MaxAvatarSize))

	customErr := ValidateFileSize(0)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidParams, customErr.Code)

	customErr = ValidateFileSize(MaxAvatarSize + 1)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrFileSizeTooLarge, customErr.Code)
}

func TestValidateFileType(t *testing.T) {
	assert.Nil(t, ValidateFileType("me.PNG", "image/png"))
	assert.Nil(t, ValidateFileType("me.jpeg", "IMAGE/JPEG"))

	for _, tc := range []struct{ file, mime string }{
		{"me.png", "image/jpeg"},
		{"me.svg", "image/svg+xml"},
		{"me", "image/png"},
		{"me.exe", "application/octet-stream"},
	} {
		customErr := ValidateFileType(tc.file, tc.mime)
		require.NotNil(t, customErr, tc.file)
		assert.Equal(t, errs.ErrFileTypeInvalid, customErr.Code)
	}
}

func TestAvatarKeys(t *testing.T) {
	key := NewAvatarKey("user-1", "Selfie.JPG")
	assert.True(t, strings.HasPrefix(key, "avatars/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.True(t, IsAvatarKeyOf("user-1", key))

	assert.NotEqual(t, key, NewAvatarKey("user-1", "Selfie.JPG"))

	assert.False(t, IsAvatarKeyOf("user-2", key))
	assert.False(t, IsAvatarKeyOf("", key))
	assert.False(t, IsAvatarKeyOf("user-1", "avatars/user-1/../user-2/x.png"))
	assert.False(t, IsAvatarKeyOf("user-1", "avatars/user-1/nested/x.png"))
	assert.False(t, IsAvatarKeyOf("user-1", "avatars/user-1/x.exe"))
	assert.False(t, IsAvatarKeyOf("user-1", "other/user-1/x.png"))
}

func TestNewStorageServiceDisabledWithoutBucket(t *testing.T) {
	svc, err := NewStorageService(ServiceConfig{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}
