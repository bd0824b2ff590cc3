package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// TourFilter critères de listage des tournées.
type TourFilter struct {
	Statut    string // vide = tous
	Matricule string // sous-chaîne du matricule
	Limit     int
	Offset    int
}

// TourRepository définit le port de persistance des tournées (DIP).
type TourRepository interface {
	Create(tour *entity.Tour) error
	GetByID(id string) (*entity.Tour, error)
	// GetForUpdate charge la tournée en verrouillant sa ligne (SELECT FOR UPDATE).
	// À n'utiliser que dans une transaction: c'est ce verrou qui sérialise les
	// transitions concurrentes sur une même tournée.
	GetForUpdate(id string) (*entity.Tour, error)
	Update(tour *entity.Tour) error
	List(filter TourFilter) ([]*entity.Tour, error)
	ListActive(limit int) ([]*entity.Tour, error)
	// LatestMatricule retourne le matricule de la tournée la plus récente qui en a un
	// ("" si aucune) pour le calcul de la prochaine série.
	LatestMatricule() (string, error)
}
