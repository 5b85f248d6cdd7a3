package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"agora/internal/app/forum"
	"agora/internal/pkg/auth/jwt"
	"agora/internal/pkg/errs"
	"agora/internal/pkg/logx"
	"agora/internal/pkg/req"
	"agora/internal/pkg/resp"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_.-]{3,30}$`)

// PasswordCost is the bcrypt cost used for new password hashes.
var PasswordCost = bcrypt.DefaultCost

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validEmail accepts a bare address such as "ada@example.com".
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validPassword checks the rune length and bcrypt's 72-byte input ceiling.
func validPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= 8 && n <= 64 && len(password) <= 72
}

// HandleRegister creates an account and signs the new user in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := forum.NormalizeEmail(input.Email)
		if !validEmail(email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if !usernameRegex.MatchString(forum.NormalizeUsername(input.Username)) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		if !validPassword(input.Password) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), PasswordCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		user, err := deps.Forum.RegisterUser(r.Context(), email, input.Username, string(hashedPassword))
		if err != nil {
			if errors.Is(err, forum.ErrEmailTaken) {
				logx.Warn("Registration conflict: email already exists.")
			}
			resp.RespondError(w, r, forumError(err, errs.ErrUserNotFound))
			return
		}

		token, err := deps.issueToken(user)
		if err != nil {
			logx.Error(err, "Failed to generate token after registration.", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondCreated(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// HandleLogin verifies an email and password pair and issues a token.
// Unknown emails and wrong passwords produce the same error.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Forum.FindUserByEmail(r.Context(), input.Email)
		if err != nil {
			if !errors.Is(err, forum.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("Login rejected: password mismatch.", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := deps.issueToken(user)
		if err != nil {
			logx.Error(err, "Failed to generate token at login.", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}
