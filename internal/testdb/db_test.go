package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Run("prefers dedicated test url", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "postgres://test@localhost/obo_test")
		t.Setenv(EnvDatabaseURL, "postgres://app@localhost/obo")
		assert.Equal(t, "postgres://test@localhost/obo_test", GetTestDatabaseURL())
	})

	t.Run("falls back to DATABASE_URL", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "")
		t.Setenv(EnvDatabaseURL, "postgres://app@localhost/obo")
		assert.Equal(t, "postgres://app@localhost/obo", GetTestDatabaseURL())
	})

	t.Run("empty when unset", func(t *testing.T) {
		t.Setenv(EnvTestDatabaseURL, "")
		t.Setenv(EnvDatabaseURL, "")
		assert.Equal(t, "", GetTestDatabaseURL())
	})
}
