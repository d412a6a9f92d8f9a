package respond

import "regexp"

var (
	// Credentials embedded in connection strings (DSN form).
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

	// Bearer tokens and JWTs that may surface in wrapped errors.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9-_.]+`)
	jwtPattern    = regexp.MustCompile(`eyJ[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+`)
)

// SanitizeError returns the error message with secrets masked so it can be
// logged safely.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")

	return msg
}
