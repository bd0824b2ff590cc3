package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// Appliquer écrit un mouvement au registre sous le verrou de la ligne de stock
// et matérialise le nouveau solde. SoldeApres est figé sur le mouvement avant
// insertion: c'est l'invariant du registre (solde = initial + somme des quantités).
// À appeler avec des repositories attachés à la même transaction.
func Appliquer(stockRepo repository.StockRepository, mouvementRepo repository.MouvementRepository, m *entity.MouvementCaisse) (*entity.StockCaisse, error) {
	st, err := stockRepo.GetForUpdate()
	if err != nil {
		return nil, err
	}
	if st == nil || !st.Initialise {
		return nil, domain.ErrStockNotReady
	}

	solde := st.StockActuel + m.Quantite
	if solde < 0 {
		return nil, domain.ErrStockInsuffisant
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.SoldeApres = solde
	m.CreatedAt = time.Now().UTC()
	if err := mouvementRepo.Create(m); err != nil {
		return nil, err
	}

	st.StockActuel = solde
	st.UpdatedAt = m.CreatedAt
	if err := stockRepo.Upsert(st); err != nil {
		return nil, err
	}
	return st, nil
}
