// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the admin password that gates the report view.

# Passwords

The configured password comes from app_config.password in the survey
document (default 123456789). It is either plain text, compared in
constant time, or a bcrypt hash:

	ok := auth.CheckPassword(cat.Settings.Password, input)
	err := auth.ValidatePassword(cat.Settings.Password, input) // ErrInvalidPassword

Hashes are produced by HashPassword, exposed on the command line as
`quickly-survey hash-password`:

	hash, err := auth.HashPassword("s3cret")

There is no lockout or rate limiting.
*/
package auth
