package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"agora/internal/app/forum"
	"agora/internal/app/storage"
	"agora/internal/pkg/errs"
	"agora/internal/pkg/logx"
	"agora/internal/pkg/req"
	"agora/internal/pkg/resp"
)

type UpdateProfileInput struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	AvatarKey *string `json:"avatarKey"`
}

type PresignAvatarInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandleGetProfile returns a user with their rooms, messages and the topic list.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		profile, err := deps.Forum.Profile(r.Context(), userID)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrUserNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user":      profile.User,
			"avatarUrl": deps.avatarURL(r.Context(), profile.User.AvatarKey),
			"rooms":     profile.Rooms,
			"messages":  profile.Messages,
			"topics":    profile.Topics,
		})
	}
}

// HandleUpdateProfile edits the caller's own profile. Omitted fields keep their value;
// an empty avatarKey clears the avatar.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		update, customErr := validateProfileInput(r.Context(), deps, user, input)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Forum.UpdateProfile(r.Context(), user, user.ID, update)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrUserNotFound))
			return
		}

		oldKey := user.AvatarKey
		if deps.Storage != nil && oldKey != "" && oldKey != updated.AvatarKey {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := deps.Storage.Delete(ctx, k); err != nil {
					logx.Error(err, "Failed to delete replaced avatar.", "key", k)
				}
			}(oldKey)
		}

		finalResponse := map[string]any{
			"user":      updated,
			"avatarUrl": deps.avatarURL(r.Context(), updated.AvatarKey),
		}

		token, err := deps.issueToken(updated)
		if err != nil {
			logx.Error(err, "update_profile: token generation failed, fallback to old token")
		} else {
			finalResponse["token"] = token
		}

		resp.RespondSuccess(w, r, finalResponse)
	}
}

// validateProfileInput normalizes input into a forum.ProfileUpdate.
func validateProfileInput(ctx context.Context, deps *AppDeps, user *forum.User, input UpdateProfileInput) (forum.ProfileUpdate, *errs.CustomError) {
	var update forum.ProfileUpdate

	if input.Email != nil {
		email := forum.NormalizeEmail(*input.Email)
		if !validEmail(email) {
			return update, errs.NewError(errs.ErrInvalidEmail)
		}
		update.Email = &email
	}

	if input.Username != nil {
		username := forum.NormalizeUsername(*input.Username)
		if !usernameRegex.MatchString(username) {
			return update, errs.NewError(errs.ErrInvalidUsername)
		}
		update.Username = &username
	}

	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if !lengthBetween(bio, 0, MaxBioLength) {
			return update, errs.NewError(errs.ErrInvalidParams)
		}
		update.Bio = &bio
	}

	if input.AvatarKey != nil {
		key := strings.TrimSpace(*input.AvatarKey)
		if key != "" {
			if deps.Storage == nil {
				return update, errs.NewError(errs.ErrFileStorageDisabled)
			}
			if !storage.IsAvatarKeyOf(user.ID, key) {
				return update, errs.NewError(errs.ErrInvalidParams)
			}
			exists, err := deps.Storage.Exists(ctx, key)
			if err != nil {
				return update, errs.NewError(errs.ErrFileStorageFailed)
			}
			if !exists {
				return update, errs.NewError(errs.ErrInvalidParams)
			}
		}
		update.AvatarKey = &key
	}

	return update, nil
}

// HandlePresignAvatar issues a presigned upload URL for a new avatar image.
// The returned key is then submitted through HandleUpdateProfile.
func HandlePresignAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageDisabled))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := storage.ValidateFileSize(input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := storage.ValidateFileType(input.FileName, input.MimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		key := storage.NewAvatarKey(user.ID, input.FileName)
		mimeType := strings.ToLower(input.MimeType)

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, mimeType, input.FileSize, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"key":       key,
			"uploadUrl": uploadURL,
			"expiresIn": int(storage.PresignedURLDuration.Seconds()),
		})
	}
}
