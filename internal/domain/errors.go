package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound         = errors.New("ressource non trouvée")
	ErrUserNotFound     = errors.New("utilisateur non trouvé")
	ErrInvalidInput     = errors.New("entrée invalide")
	ErrInvalidState     = errors.New("transition incompatible avec le statut actuel")
	ErrAlreadyResolved  = errors.New("conflit déjà traité")
	ErrUnauthorized     = errors.New("non autorisé")
	ErrForbidden        = errors.New("accès refusé")
	ErrStockNotReady    = errors.New("stock de caisses non initialisé")
	ErrStockInsuffisant = errors.New("stock de caisses insuffisant")
	ErrUpstream         = errors.New("service externe indisponible")
)
