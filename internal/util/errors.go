package util

import "errors"

var (
	ErrUserNotFound     = errors.New("utilisateur introuvable")
	ErrEmailRegistered  = errors.New("cet email est déjà enregistré")
	ErrVisitorNotFound  = errors.New("visiteur introuvable")
	ErrBergerieNotFound = errors.New("bergerie introuvable")
	ErrCityNotFound     = errors.New("ville introuvable")
	ErrInvalidPeriod    = errors.New("période invalide, format attendu AAAA-MM")
	ErrInvalidDate      = errors.New("date invalide, format attendu AAAA-MM-JJ")
	ErrSessionNotFound  = errors.New("session d'inscription expirée ou introuvable")
)
