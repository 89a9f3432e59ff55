package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carscout/src/repository"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", "carscout", time.Hour)

	raw, err := tokens.Generate(repository.Identity{ID: "user-1", Email: "a@b.c"})
	assert.NoError(t, err)

	ident, err := tokens.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", ident.ID)
	assert.Equal(t, "a@b.c", ident.Email)
}

func TestTokenManagerRejectsTampering(t *testing.T) {
	tokens := NewTokenManager("test-secret", "carscout", time.Hour)
	raw, err := tokens.Generate(repository.Identity{ID: "user-1"})
	assert.NoError(t, err)

	_, err = tokens.Verify(raw + "broken")
	assert.Error(t, err)

	other := NewTokenManager("other-secret", "carscout", time.Hour)
	_, err = other.Verify(raw)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", "carscout", -time.Minute)
	raw, err := tokens.Generate(repository.Identity{ID: "user-1"})
	assert.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}
