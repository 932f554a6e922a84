package sqlite

import "strings"

// modernc's driver surfaces constraint failures as plain error strings,
// so classification is by message.
func isUniqueViolation(err error) bool {
	return errContains(err, "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errContains(err, "FOREIGN KEY constraint failed")
}

func errContains(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}
