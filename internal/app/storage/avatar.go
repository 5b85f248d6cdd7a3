package storage

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"agora/internal/pkg/errs"
)

const (
	// MaxAvatarSizeMB is the maximum allowed avatar size in megabytes.
	MaxAvatarSizeMB = 2

	// MaxAvatarSize is the maximum allowed avatar size in bytes.
	MaxAvatarSize = MaxAvatarSizeMB * 1024 * 1024

	// PresignedURLDuration is the fixed duration for which a signed URL is valid.
	PresignedURLDuration = 5 * time.Minute

	avatarPrefix = "avatars/"
)

// AllowedMIMETypes defines the set of permitted MIME types for avatars.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// ExtToMIME maps file extensions to their corresponding MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ValidateFileSize checks if the provided file size is within acceptable limits.
func ValidateFileSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxAvatarSize {
		return errs.NewError(errs.ErrFileSizeTooLarge, MaxAvatarSizeMB)
	}

	return nil
}

// ValidateFileType checks that the extension of fileName agrees with an allowed mimeType.
func ValidateFileType(fileName string, mimeType string) *errs.CustomError {
	lowerMimeType := strings.ToLower(mimeType)

	if _, ok := AllowedMIMETypes[lowerMimeType]; !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	expectedMIME, ok := ExtToMIME[ext]
	if !ok || expectedMIME != lowerMimeType {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

// NewAvatarKey builds a fresh object key for an avatar owned by userID.
func NewAvatarKey(userID string, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return avatarPrefix + userID + "/" + uuid.NewString() + ext
}

// IsAvatarKeyOf reports whether key was issued to userID by NewAvatarKey.
func IsAvatarKeyOf(userID string, key string) bool {
	if userID == "" || strings.Contains(key, "..") {
		return false
	}

	rest, ok := strings.CutPrefix(key, avatarPrefix+userID+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return false
	}

	_, known := ExtToMIME[strings.ToLower(filepath.Ext(rest))]
	return known
}
