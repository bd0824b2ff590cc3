package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// StockRepository définit le port de persistance du solde de caisses (ligne unique).
type StockRepository interface {
	Get() (*entity.StockCaisse, error)
	// GetForUpdate verrouille la ligne du stock (SELECT FOR UPDATE): toute écriture
	// au registre passe par ce verrou pour garder solde et mouvements cohérents.
	GetForUpdate() (*entity.StockCaisse, error)
	Upsert(stock *entity.StockCaisse) error
}
