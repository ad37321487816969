package repositories

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey is returned when a foreign key constraint rejects a write.
	ErrForeignKey = errors.New("foreign key violation")
)

// SQLite extended result codes for foreign key failures. Deleting a
// referenced parent row reports 1811 (SQLITE_CONSTRAINT_TRIGGER), which the
// GORM sqlite translator leaves untouched.
const (
	sqliteConstraintForeignKey = 787
	sqliteConstraintTrigger    = 1811
)

// translate maps GORM errors onto the repository sentinels. The DB must be
// opened with TranslateError enabled for the constraint cases to be detected.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteForeignKey(err):
		return ErrForeignKey
	}
	return err
}

// isSQLiteForeignKey reads the extended code the way the sqlite driver does,
// by round-tripping the error through JSON.
func isSQLiteForeignKey(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		raw, marshalErr := json.Marshal(err)
		if marshalErr != nil {
			continue
		}
		var sqliteErr struct {
			ExtendedCode int
		}
		if json.Unmarshal(raw, &sqliteErr) == nil {
			switch sqliteErr.ExtendedCode {
			case sqliteConstraintForeignKey, sqliteConstraintTrigger:
				return true
			}
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return true
		}
	}
	return false
}
