package dijay

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeUnregisteredToken
	ErrCodeCircularDependency
	ErrCodeInvalidProvider
	ErrCodeInvalidToken
	ErrCodeTypeMismatch
	ErrCodeStartupFailed
	ErrCodeShutdownFailed
	ErrCodeHealthCheckFailed
	ErrCodeContainerAlreadyStarted
	ErrCodeModuleApplyFailed
	ErrCodeModuleCycle
	ErrCodeInvalidModule
	ErrCodeValidationFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                 "UNKNOWN",
	ErrCodeUnregisteredToken:       "UNREGISTERED_TOKEN",
	ErrCodeCircularDependency:      "CIRCULAR_DEPENDENCY",
	ErrCodeInvalidProvider:         "INVALID_PROVIDER",
	ErrCodeInvalidToken:            "INVALID_TOKEN",
	ErrCodeTypeMismatch:            "TYPE_MISMATCH",
	ErrCodeStartupFailed:           "STARTUP_FAILED",
	ErrCodeShutdownFailed:          "SHUTDOWN_FAILED",
	ErrCodeHealthCheckFailed:       "HEALTH_CHECK_FAILED",
	ErrCodeContainerAlreadyStarted: "CONTAINER_ALREADY_STARTED",
	ErrCodeModuleApplyFailed:       "MODULE_APPLY_FAILED",
	ErrCodeModuleCycle:             "MODULE_CYCLE",
	ErrCodeInvalidModule:           "INVALID_MODULE",
	ErrCodeValidationFailed:        "VALIDATION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is returned for every failure the container itself detects.
// Errors returned by providers and hooks are never converted to *Error by
// Resolve or Call.
type Error struct {
	Code    ErrorCode
	Message string
	Token   string
	Cause   error
	Stack   []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Token != "" {
		b.WriteString(fmt.Sprintf(" token=%s:", e.Token))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

func (e *Error) WithStack(stack []string) *Error {
	e.Stack = stack
	return e
}

var (
	ErrUnregisteredToken       = &Error{Code: ErrCodeUnregisteredToken, Message: "token is not registered"}
	ErrCircularDependency      = &Error{Code: ErrCodeCircularDependency, Message: "circular dependency"}
	ErrInvalidProvider         = &Error{Code: ErrCodeInvalidProvider, Message: "invalid provider"}
	ErrTypeMismatch            = &Error{Code: ErrCodeTypeMismatch, Message: "type mismatch"}
	ErrContainerAlreadyStarted = &Error{Code: ErrCodeContainerAlreadyStarted, Message: "container already started"}
)

var (
	errNilProvider = errors.New("provider is nil")
	errNoToken     = errors.New("provider has no token")
)

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errUnregisteredToken(token string, stack []string) *Error {
	return newError(
		ErrCodeUnregisteredToken,
		fmt.Sprintf("no provider registered for %s", token),
		nil,
	).WithToken(token).WithStack(stack)
}

func errCircularDependency(token string, chain []string) *Error {
	return newError(
		ErrCodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %s", strings.Join(chain, " -> ")),
		nil,
	).WithToken(token).WithStack(chain)
}

func errInvalidProvider(token string, cause error) *Error {
	return newError(
		ErrCodeInvalidProvider,
		fmt.Sprintf("invalid provider for %s", token),
		cause,
	).WithToken(token)
}

func errInvalidToken(token string) *Error {
	return newError(
		ErrCodeInvalidToken,
		"token must be comparable",
		nil,
	).WithToken(token)
}

func errTypeMismatch(token string, target string, got any) *Error {
	return newError(
		ErrCodeTypeMismatch,
		fmt.Sprintf("cannot use %T as %s", got, target),
		nil,
	).WithToken(token)
}

func errStartupFailed(name string, cause error) *Error {
	return newError(
		ErrCodeStartupFailed,
		fmt.Sprintf("bootstrap hook %s failed", name),
		cause,
	)
}

func errShutdownFailed(cause error) *Error {
	return newError(ErrCodeShutdownFailed, "shutdown hooks failed", cause)
}

func errAlreadyStarted() *Error {
	return newError(ErrCodeContainerAlreadyStarted, "container already started", nil)
}

func errHealthCheckFailed(token string, cause error) *Error {
	return newError(
		ErrCodeHealthCheckFailed,
		"health check failed",
		cause,
	).WithToken(token)
}

func errValidationFailed(problems []string) *Error {
	return newError(
		ErrCodeValidationFailed,
		"container validation failed: "+strings.Join(problems, "; "),
		nil,
	)
}

func IsUnregisteredToken(err error) bool {
	return hasCode(err, ErrCodeUnregisteredToken)
}

func IsCircularDependency(err error) bool {
	return hasCode(err, ErrCodeCircularDependency)
}

func IsInvalidProvider(err error) bool {
	return hasCode(err, ErrCodeInvalidProvider)
}

func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}

func IsStartupFailed(err error) bool {
	return hasCode(err, ErrCodeStartupFailed)
}

func IsShutdownFailed(err error) bool {
	return hasCode(err, ErrCodeShutdownFailed)
}

func hasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

// isResolutionFailure reports whether err is the kind of failure an optional
// parameter absorbs. Only errors raised by the container itself qualify; a
// provider error that merely wraps one does not.
func isResolutionFailure(err error) bool {
	e, ok := err.(*Error) //nolint:errorlint // only direct container errors
	if !ok {
		return false
	}
	return e.Code == ErrCodeUnregisteredToken || e.Code == ErrCodeCircularDependency
}
