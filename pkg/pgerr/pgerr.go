package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые репозитории переводят в доменные ошибки
const (
	UniqueViolation     = "23505"
	ExclusionViolation  = "23P01"
	ForeignKeyViolation = "23503"
)

// Code возвращает SQLSTATE ошибки PostgreSQL или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Constraint возвращает имя нарушенного ограничения или пустую строку
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation returns true for unique_violation on the given constraint
// (пустое имя ограничения означает "любое")
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, UniqueViolation, constraint)
}

// IsExclusionViolation returns true for exclusion_violation on the given constraint
func IsExclusionViolation(err error, constraint string) bool {
	return is(err, ExclusionViolation, constraint)
}

// IsForeignKeyViolation returns true for foreign_key_violation on the given constraint
func IsForeignKeyViolation(err error, constraint string) bool {
	return is(err, ForeignKeyViolation, constraint)
}

func is(err error, code, constraint string) bool {
	if Code(err) != code {
		return false
	}
	return constraint == "" || Constraint(err) == constraint
}
