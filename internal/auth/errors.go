package auth

import "errors"

// ErrInvalidToken covers every token verification failure: bad signature,
// malformed encoding, missing claim fields, and expiry. They are deliberately
// indistinguishable so callers cannot learn which check failed.
var ErrInvalidToken = errors.New("could not validate token credentials")

// ErrInvalidCredentials is returned for both unknown-username and
// wrong-password so login failures do not enumerate usernames.
var ErrInvalidCredentials = errors.New("authentication unsuccessful")

// ErrNoAuthenticatedUser is the access gate rejection: the token verified but
// no stored identity backs it (for example the account was deleted).
var ErrNoAuthenticatedUser = errors.New("no authenticated user")

// Registration-time duplicate rejections, reported distinctly from
// authentication failures.
var (
	ErrEmailTaken    = errors.New("email is already taken")
	ErrUsernameTaken = errors.New("username is already taken")
)
