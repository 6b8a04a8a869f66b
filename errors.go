package goSession

import "errors"

var (
	// ErrUsernameTaken is returned by [Engine.Register] when the username
	// already has a credential entry. The caller may retry with a different
	// username; the existing account is unaffected.
	ErrUsernameTaken = errors.New("username is taken")

	// ErrInvalidCredentials is returned by [Engine.Authenticate] for both an
	// unknown username and a wrong password. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("username and password combination is wrong")

	// ErrNoSession is returned by [Engine.Resolve] when the caller supplied
	// no session identifier at all. This is the expected "not logged in"
	// state, not a fault.
	ErrNoSession = errors.New("no session presented")

	// ErrSessionInvalid is returned by [Engine.Resolve] when a session
	// identifier was supplied but is not present in the session registry.
	ErrSessionInvalid = errors.New("session is invalid")

	// ErrRegistrationInvalid is returned by [Engine.Register] when the
	// request is malformed, currently only an empty username.
	ErrRegistrationInvalid = errors.New("invalid registration request")

	// ErrEngineNotReady is returned when an Engine method is called on an
	// engine that was not produced by [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
)
