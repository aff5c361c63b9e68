package errs

import "errors"

var (
	ErrNameRequired           = errors.New("E0001: name is required")
	ErrTeamNameRequired       = errors.New("E0002: team name is required")
	ErrEmailRequired          = errors.New("E0003: email is required")
	ErrPasswordRequired       = errors.New("E0004: password is required")
	ErrEmailAddressFormat     = errors.New("E0005: email address format incorrect")
	ErrInvalidEmailOrPassword = errors.New("E0006: invalid email or password")
	ErrTeamAlreadyExists      = errors.New("E0007: team already exists")
	ErrEmailAlreadyExists     = errors.New("E0008: email already registered")
	ErrAlreadyExists          = errors.New("E0009: already registered")
	ErrURLRequired            = errors.New("E0010: submission url is required")
	ErrInvalidTopK            = errors.New("E0011: top_k must be positive")
	ErrUnauthorized           = errors.New("E0012: unauthorized")
	ErrForbidden              = errors.New("E0013: forbidden")
	ErrTokenExpired           = errors.New("E0014: token expired")
	ErrJWT                    = errors.New("E0015: JWT failure")
	ErrNotFound               = errors.New("E0016: not found")
	ErrInvalidID              = errors.New("E0017: invalid ID")
	ErrQuotaExhausted         = errors.New("E0018: no submissions left")
	ErrDatabase               = errors.New("E0019: database error")
	ErrCryptographic          = errors.New("E0020: cryptographic failure")
	ErrUpstream               = errors.New("E0021: evaluation backend error")
	ErrQueue                  = errors.New("E0022: queue error")
	ErrMail                   = errors.New("E0023: error sending email")
)
