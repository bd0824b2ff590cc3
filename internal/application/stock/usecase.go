package stock

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// UseCase gère le stock de caisses: initialisation, ajustements manuels et
// consultation du registre. Toute écriture passe par une transaction avec
// verrou de la ligne de stock.
type UseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	mouvementRepo repository.MouvementRepository
	configRepo    repository.ConfigRepository

	seuilAlerteDefaut int
	valeurDefautTND   decimal.Decimal
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	mouvementRepo repository.MouvementRepository,
	configRepo repository.ConfigRepository,
	seuilAlerteDefaut int,
	valeurDefautTND decimal.Decimal,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		stockRepo:         stockRepo,
		mouvementRepo:     mouvementRepo,
		configRepo:        configRepo,
		seuilAlerteDefaut: seuilAlerteDefaut,
		valeurDefautTND:   valeurDefautTND,
	}
}

// Get retourne l'état courant du stock. ErrStockNotReady si jamais initialisé.
func (uc *UseCase) Get() (*entity.StockCaisse, error) {
	st, err := uc.stockRepo.Get()
	if err != nil {
		return nil, err
	}
	if st == nil || !st.Initialise {
		return nil, domain.ErrStockNotReady
	}
	return st, nil
}

// Init met en place le stock initial. Refusé si le stock est déjà initialisé:
// les corrections ultérieures passent par Ajuster, jamais par une réinitialisation.
func (uc *UseCase) Init(ctx context.Context, stockInitial, seuilAlertePct int, userID string) (*entity.StockCaisse, error) {
	if stockInitial <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if seuilAlertePct <= 0 || seuilAlertePct > 100 {
		seuilAlertePct = uc.seuilAlerteDefaut
	}

	var result *entity.StockCaisse
	err := uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		st, err := stockRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if st != nil && st.Initialise {
			return domain.ErrInvalidState
		}

		now := time.Now().UTC()
		if st == nil {
			st = &entity.StockCaisse{ID: uuid.NewString()}
		}
		st.StockActuel = stockInitial
		st.StockInitial = stockInitial
		st.SeuilAlertePct = seuilAlertePct
		st.Initialise = true
		st.UpdatedAt = now
		if err := stockRepo.Upsert(st); err != nil {
			return err
		}

		mouvement := &entity.MouvementCaisse{
			ID:         uuid.NewString(),
			Type:       entity.MouvementInitialisation,
			Quantite:   stockInitial,
			SoldeApres: stockInitial,
			UserID:     &userID,
			CreatedAt:  now,
		}
		if err := mouvementRepo.Create(mouvement); err != nil {
			return err
		}

		result = st
		return auditRepo.Create(&entity.AuditLog{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.AuditStockInitialise,
			TargetID:  st.ID,
			Details:   auditDetails(map[string]any{"stock_initial": stockInitial, "seuil_alerte_pct": seuilAlertePct}),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Ajuster applique une correction manuelle signée au stock (inventaire physique,
// casse constatée hors tournée). Les notes sont obligatoires.
func (uc *UseCase) Ajuster(ctx context.Context, quantite int, notes, userID string) (*entity.StockCaisse, error) {
	if quantite == 0 || strings.TrimSpace(notes) == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockCaisse
	err := uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		st, err := Appliquer(stockRepo, mouvementRepo, &entity.MouvementCaisse{
			Type:     entity.MouvementAjustement,
			Quantite: quantite,
			UserID:   &userID,
			Notes:    &notes,
		})
		if err != nil {
			return err
		}

		result = st
		return auditRepo.Create(&entity.AuditLog{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    entity.AuditStockAjuste,
			TargetID:  st.ID,
			Details:   auditDetails(map[string]any{"quantite": quantite, "solde_apres": st.StockActuel, "notes": notes}),
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListMouvements consulte le registre des caisses, filtré et paginé.
func (uc *UseCase) ListMouvements(filter repository.MouvementFilter) ([]*entity.MouvementCaisse, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	mouvements, err := uc.mouvementRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.mouvementRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return mouvements, total, nil
}

// ValeurCaisse retourne la valeur de remplacement d'une caisse, avec repli sur
// la valeur configurée au démarrage si aucune ligne n'existe en base.
func (uc *UseCase) ValeurCaisse() (decimal.Decimal, error) {
	cfg, err := uc.configRepo.Get()
	if err != nil {
		return decimal.Zero, err
	}
	if cfg == nil {
		return uc.valeurDefautTND, nil
	}
	return cfg.ValeurTND, nil
}

// SetValeurCaisse met à jour la valeur de remplacement d'une caisse.
func (uc *UseCase) SetValeurCaisse(valeur decimal.Decimal) (*entity.CaisseConfig, error) {
	if valeur.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	cfg, err := uc.configRepo.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &entity.CaisseConfig{ID: uuid.NewString()}
	}
	cfg.ValeurTND = valeur
	cfg.UpdatedAt = time.Now().UTC()
	if err := uc.configRepo.Upsert(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func auditDetails(fields map[string]any) string {
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}
