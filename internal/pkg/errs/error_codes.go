/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Room and Content Business Logic Errors
const (
	// ErrRoomNotFound indicates that the requested room does not exist.
	ErrRoomNotFound = 2103

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = 2104

	// ErrMessageContentTooLong indicates that the user's message content exceeded the maximum length limit.
	ErrMessageContentTooLong = 2201

	// ErrMessageEmpty indicates that a message body was blank.
	ErrMessageEmpty = 2202

	// ErrTopicNameInvalid indicates that a topic name was blank or too long.
	ErrTopicNameInvalid = 2301

	// ErrRoomNameInvalid indicates that a room name was blank or too long.
	ErrRoomNameInvalid = 2302

	// ErrFileSizeTooLarge indicates that an uploaded file exceeds the size limit.
	ErrFileSizeTooLarge = 2401

	// ErrFileTypeInvalid indicates that an uploaded file is not an allowed image type.
	ErrFileTypeInvalid = 2402
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrAlreadyLoggedIn indicates that a signed-in user tried to register or log in again.
	ErrAlreadyLoggedIn = 3005

	// ErrInvalidUsername indicates that the username does not match the allowed pattern.
	ErrInvalidUsername = 3006

	// ErrInvalidPassword indicates that the password length is out of range.
	ErrInvalidPassword = 3007

	// ErrEmailAlreadyExists indicates that the email is already registered.
	ErrEmailAlreadyExists = 3008

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	ErrInvalidCredentials = 3009

	// ErrNotAllowed indicates that the caller does not own the resource it tried to change.
	ErrNotAllowed = 3010

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = 3011

	// ErrInvalidEmail indicates that the email address is malformed.
	ErrInvalidEmail = 3012

	// ErrUnauthorized indicates that the endpoint requires a signed-in user.
	ErrUnauthorized = 3401
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the object storage backend failed.
	ErrFileStorageFailed = 5001

	// ErrFileStorageDisabled indicates that no object storage is configured.
	ErrFileStorageDisabled = 5002
)
