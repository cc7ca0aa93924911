package apperrors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown    Code = "UNKNOWN"
	CodeInternal   Code = "INTERNAL"
	CodeValidation Code = "VALIDATION"

	// Auth errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"

	// Membership errors
	CodeMembershipNotFound          Code = "MEMBERSHIP_NOT_FOUND"
	CodeMembershipOnHold            Code = "MEMBERSHIP_ON_HOLD"
	CodeMembershipCancelled         Code = "MEMBERSHIP_CANCELLED"
	CodeMembershipCompleted         Code = "MEMBERSHIP_COMPLETED"
	CodeMembershipInvalidTransition Code = "MEMBERSHIP_INVALID_STATUS_TRANSITION"
	CodeMembershipConcurrentUpdate  Code = "MEMBERSHIP_CONCURRENT_UPDATE"
	CodeStatusCompletedNotAllowed   Code = "STATUS_COMPLETED_NOT_ALLOWED"
	CodeWeekNotFound                Code = "WEEK_NOT_FOUND"
	CodeDayNotFound                 Code = "DAY_NOT_FOUND"
	CodeDayAlreadyConsumed          Code = "DAY_ALREADY_CONSUMED"
	CodeMealAlreadyConsumed         Code = "MEAL_ALREADY_CONSUMED"
	CodeQuantityExceedsRemaining    Code = "QUANTITY_EXCEEDS_REMAINING"

	// Hotel, table and booking errors
	CodeHotelNotFound             Code = "HOTEL_NOT_FOUND"
	CodeTableNotFound             Code = "TABLE_NOT_FOUND"
	CodeTableHotelMismatch        Code = "TABLE_HOTEL_MISMATCH"
	CodeTableUnavailable          Code = "TABLE_UNAVAILABLE"
	CodeBookingNotFound           Code = "BOOKING_NOT_FOUND"
	CodeBookingInvalidTransition  Code = "BOOKING_INVALID_TRANSITION"
	CodeBookingTransactionAborted Code = "BOOKING_TRANSACTION_ABORTED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation,
		CodeStatusCompletedNotAllowed,
		CodeTableHotelMismatch,
		CodeTableUnavailable:
		return http.StatusBadRequest

	case CodeUnauthenticated:
		return http.StatusUnauthorized

	case CodeForbidden:
		return http.StatusForbidden

	case CodeMembershipNotFound,
		CodeWeekNotFound,
		CodeDayNotFound,
		CodeHotelNotFound,
		CodeTableNotFound,
		CodeBookingNotFound:
		return http.StatusNotFound

	case CodeMembershipOnHold,
		CodeMembershipCancelled,
		CodeMembershipCompleted,
		CodeMembershipInvalidTransition,
		CodeMembershipConcurrentUpdate,
		CodeDayAlreadyConsumed,
		CodeMealAlreadyConsumed,
		CodeQuantityExceedsRemaining,
		CodeBookingInvalidTransition:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
