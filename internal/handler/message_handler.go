package handler

import (
	"net/http"
	"strings"

	"agora/internal/pkg/errs"
	"agora/internal/pkg/req"
	"agora/internal/pkg/resp"
)

type PostMessageInput struct {
	Body string `json:"body"`
}

// HandlePostMessage posts into a room and makes the author a participant.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		roomID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		var input PostMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		body := strings.TrimSpace(input.Body)
		if body == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageEmpty))
			return
		}
		if !lengthBetween(body, 1, MaxMessageLength) {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageContentTooLong))
			return
		}

		message, err := deps.Forum.PostMessage(r.Context(), roomID, user, body)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrRoomNotFound))
			return
		}

		resp.RespondCreated(w, r, map[string]any{"message": message})
	}
}

// HandleDeleteMessage deletes a message. Author only.
func HandleDeleteMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		messageID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAllowed))
			return
		}

		if err := deps.Forum.DeleteMessage(r.Context(), messageID, user); err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrMessageNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"id": messageID})
	}
}

// HandleActivity returns every message, newest first.
func HandleActivity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := deps.Forum.ListAllMessages(r.Context())
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": messages})
	}
}

// HandleSearchTopics lists topics whose name contains ?q=.
func HandleSearchTopics(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := deps.Forum.SearchTopics(r.Context(), req.SearchQuery(r))
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"topics": topics})
	}
}
