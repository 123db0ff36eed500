package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrOutsideMunicipality = New(
		"POINT_OUTSIDE_MUNICIPALITY",
		"Point is outside the supported municipality extent",
		http.StatusBadRequest,
	)

	ErrAddressNotFound = New(
		"ADDRESS_NOT_FOUND",
		"Could not find the address",
		http.StatusNotFound,
	)

	ErrGeocoderError = New(
		"GEOCODER_ERROR",
		"Address search provider failed",
		http.StatusBadGateway,
	)

	ErrGeocoderDisabled = New(
		"GEOCODER_DISABLED",
		"Address search is not configured",
		http.StatusServiceUnavailable,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = New(
		"USER_ALREADY_EXISTS",
		"User already exists",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = New(
		"INVALID_USER_ID",
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
