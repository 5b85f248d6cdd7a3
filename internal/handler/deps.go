package handler

import (
	"context"
	"errors"
	"net/http"

	"agora/internal/app/forum"
	"agora/internal/app/storage"
	"agora/internal/configs"
	"agora/internal/pkg/auth/jwt"
	"agora/internal/pkg/errs"
	"agora/internal/pkg/logx"
)

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config *configs.AppConfig
	Forum  *forum.Service

	// Storage is nil when avatar uploads are disabled.
	Storage storage.StorageService

	// DBPing backs the health check when set.
	DBPing func(ctx context.Context) error
}

// actingUser resolves the request's identity token to a stored user.
// Anonymous callers and tokens for vanished accounts get ErrUnauthorized.
func (d *AppDeps) actingUser(r *http.Request) (*forum.User, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	user, err := d.Forum.FetchUser(r.Context(), payload.ID)
	if err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			logx.Warn("Token references a missing user.", "user_id", payload.ID)
			return nil, errs.NewError(errs.ErrUnauthorized)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return user, nil
}

// issueToken signs a fresh identity token for user.
func (d *AppDeps) issueToken(user *forum.User) (string, error) {
	return jwt.GenerateToken(&jwt.Payload{
		ID:       user.ID,
		Username: user.Username,
	}, d.Config.JWTSecret, jwt.UserIdentityExpiration)
}

// avatarURL returns a short-lived download URL for key, or "" when there is nothing to show.
func (d *AppDeps) avatarURL(ctx context.Context, key string) string {
	if key == "" || d.Storage == nil {
		return ""
	}

	url, err := d.Storage.PresignDownload(ctx, key, storage.PresignedURLDuration)
	if err != nil {
		return ""
	}

	return url
}
