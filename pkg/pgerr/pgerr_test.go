package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation, Constraint: "contracts_details_id_key"})
	foreignKey := &pq.Error{Code: ForeignKeyViolation, Constraint: "reservations_room_id_fkey"}

	assert.True(t, IsUniqueViolation(unique, "contracts_details_id_key"))
	assert.True(t, IsUniqueViolation(unique, ""))
	assert.False(t, IsUniqueViolation(unique, "other_key"))
	assert.False(t, IsExclusionViolation(unique, ""))

	assert.True(t, IsForeignKeyViolation(foreignKey, "reservations_room_id_fkey"))
	assert.False(t, IsForeignKeyViolation(foreignKey, "reservations_student_id_fkey"))

	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
	assert.Empty(t, Code(nil))
	assert.Equal(t, "contracts_details_id_key", Constraint(unique))
}
