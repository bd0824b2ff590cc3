package tour

import (
	"context"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction BD, en passant des
// repositories attachés à cette transaction. Les transitions de tournée qui
// touchent au stock ou créent un conflit passent toutes par ce runner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tourRepo repository.TourRepository,
		driverRepo repository.DriverRepository,
		secteurRepo repository.SecteurRepository,
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		conflictRepo repository.ConflictRepository,
	) error) error
}

// PhotoStore persiste une photo encodée en base64 et retourne son URL publique.
type PhotoStore interface {
	Save(base64Data, prefix string) (string, error)
}

// Notifier diffuse les événements métier aux rôles concernés. Les implémentations
// n'envoient jamais dans la transaction: l'appel se fait après commit et ne bloque pas.
type Notifier interface {
	NotifyConflict(conflict *entity.Conflict, tour *entity.Tour)
	NotifyHygieneRequired(tour *entity.Tour)
	NotifyHygieneReject(tour *entity.Tour)
}
