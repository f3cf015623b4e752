package apperrors

import "net/http"

// Predefined domain errors for the support flow.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already taken",
	http.StatusConflict,
)

var ErrCreatorNotFound = New(
	CodeNotFound,
	"support",
	"Creator not found",
	http.StatusNotFound,
)

var ErrPlanNotFound = New(
	CodeNotFound,
	"support",
	"Subscription plan not found",
	http.StatusNotFound,
)

var ErrInvalidAmount = New(
	CodeValidationFailed,
	"support",
	"Amount must be a positive number of minor currency units",
	http.StatusBadRequest,
)

// ErrSupportTimeout is returned when the whole support orchestration did
// not finish within its deadline. The request is safe to retry: nothing
// was committed.
var ErrSupportTimeout = New(
	CodeTimeout,
	"support",
	"Support request timed out, please retry",
	http.StatusServiceUnavailable,
)
