package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Sentinel messages reach the client through the response envelope, so they
// stay in French like the rest of the user-facing surface.
func TestSentinelMessagesAreLocalized(t *testing.T) {
	assert.Equal(t, "utilisateur introuvable", ErrUserNotFound.Error())
	assert.Equal(t, "cet email est déjà enregistré", ErrEmailRegistered.Error())
	assert.Equal(t, "visiteur introuvable", ErrVisitorNotFound.Error())
	assert.Equal(t, "bergerie introuvable", ErrBergerieNotFound.Error())
	assert.Equal(t, "ville introuvable", ErrCityNotFound.Error())
	assert.Equal(t, "période invalide, format attendu AAAA-MM", ErrInvalidPeriod.Error())
	assert.Equal(t, "date invalide, format attendu AAAA-MM-JJ", ErrInvalidDate.Error())
	assert.Equal(t, "session d'inscription expirée ou introuvable", ErrSessionNotFound.Error())
}
