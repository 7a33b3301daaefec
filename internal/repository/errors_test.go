package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'ann@x.com' for key 'accounts.email'")))
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry '3-7' for key 'ratings.uq_provider_rater'")))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(sql.ErrNoRows))
	assert.False(t, isDuplicateKey(errors.New("Error 1213 (40001): Deadlock found when trying to get lock")))
}
