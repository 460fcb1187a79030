package errors

import "fmt"

// User-facing messages. Every response body text the API emits is defined here.
const (
	MsgInvalidRequest        = "Invalid request."
	MsgUnauthenticatedUser   = "User is not authenticated."
	MsgGeneric               = "Something went wrong."
	MsgInvalidEmail          = "Invalid email address format."
	MsgDuplicateEmail        = "This email is already in use."
	MsgPasswordMinLength     = "Password must be at least 8 characters."
	MsgPasswordAlphanumeric  = "Password must contain only half-width letters and digits."
	MsgInvalidCredentials    = "Invalid credentials."
	MsgTokenRequired         = "Authentication token required."
	MsgTokenInvalid          = "Invalid or expired token."
	MsgRatingNumber          = "Rating must be a number."
	MsgRatingRange           = "Rating must be an integer between 1 and 5."
	MsgReviewCommentRequired = "Either a spoiler-free comment or a spoiler comment is required."
	MsgReviewMaxLength       = "Comments must be 1000 characters or fewer."
	MsgInvalidDate           = "Release date must be a valid date (YYYY-MM-DD)."
	MsgMovieSearchFailed     = "Failed to fetch movies from the metadata service."
	MsgMovieSaveFailed       = "Failed to save the movie."
	MsgMovieNotFound         = "Movie not found."
	MsgMovieReference        = "The referenced movie does not exist."
	MsgUserRegistered        = "User registered successfully."
)

// MsgRequired formats the message for a missing required field.
func MsgRequired(field string) string {
	return fmt.Sprintf("%s is required.", field)
}

// MsgInvalidType formats the message for a field of the wrong JSON type.
func MsgInvalidType(field, expected string) string {
	return fmt.Sprintf("%s must be a %s.", field, expected)
}
