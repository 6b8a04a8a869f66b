package goSession

// Profile carries the non-credential attributes captured at registration.
// Location is optional and stays nil when the caller omitted it.
type Profile struct {
	Bio      string
	Location *string
}

// Account is the public account representation returned by [Engine.Resolve].
// Username is immutable once registered.
type Account struct {
	Username string
	Profile  Profile
}

// RegisterRequest is the input for [Engine.Register]. Username and Password
// are required; Bio may be empty and Location may be nil.
type RegisterRequest struct {
	Username string
	Password string
	Bio      string
	Location *string
}
