package handler

import (
	"net/http"
	"strings"

	"agora/internal/pkg/errs"
	"agora/internal/pkg/req"
	"agora/internal/pkg/resp"
)

// HomeTopicLimit is how many topics the home listing shows.
const HomeTopicLimit = 5

type RoomInput struct {
	Topic       string `json:"topic"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// normalize trims the input and checks field lengths.
func (in *RoomInput) normalize() *errs.CustomError {
	in.Topic = strings.TrimSpace(in.Topic)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if !lengthBetween(in.Topic, 1, MaxTopicNameLength) {
		return errs.NewError(errs.ErrTopicNameInvalid, MaxTopicNameLength)
	}
	if !lengthBetween(in.Name, 1, MaxRoomNameLength) {
		return errs.NewError(errs.ErrRoomNameInvalid, MaxRoomNameLength)
	}
	if !lengthBetween(in.Description, 0, MaxDescriptionLength) {
		return errs.NewError(errs.ErrInvalidParams)
	}

	return nil
}

// HandleHome lists rooms matching ?q= together with the first topics, the match
// count and the recent activity under matching topics.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := req.SearchQuery(r)

		rooms, err := deps.Forum.SearchRooms(ctx, q)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		count, err := deps.Forum.CountRooms(ctx, q)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		topics, err := deps.Forum.ListTopics(ctx, HomeTopicLimit)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		messages, err := deps.Forum.SearchMessagesByTopic(ctx, q)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"rooms":     rooms,
			"roomCount": count,
			"topics":    topics,
			"messages":  messages,
		})
	}
}

// HandleGetRoom returns a room with its participants and messages, newest first.
func HandleGetRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		room, err := deps.Forum.FetchRoom(r.Context(), roomID)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrRoomNotFound))
			return
		}

		messages, err := deps.Forum.ListMessagesForRoom(r.Context(), roomID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room":     room,
			"messages": messages,
		})
	}
}

// HandleCreateRoom creates a room hosted by the caller, creating its topic on first use.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input RoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.normalize(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, err := deps.Forum.CreateRoom(r.Context(), user, input.Topic, input.Name, input.Description)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrRoomNotFound))
			return
		}

		resp.RespondCreated(w, r, map[string]any{"room": room})
	}
}

// HandleUpdateRoom overwrites a room's topic, name and description. Host only.
func HandleUpdateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		roomID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAllowed))
			return
		}

		var input RoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.normalize(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, err := deps.Forum.UpdateRoom(r.Context(), roomID, user, input.Topic, input.Name, input.Description)
		if err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrRoomNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"room": room})
	}
}

// HandleDeleteRoom removes a room and everything posted in it. Host only.
func HandleDeleteRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := deps.actingUser(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		roomID, ok := req.PathID(r, "id")
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAllowed))
			return
		}

		if err := deps.Forum.DeleteRoom(r.Context(), roomID, user); err != nil {
			resp.RespondError(w, r, forumError(err, errs.ErrRoomNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"id": roomID})
	}
}
