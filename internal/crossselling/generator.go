package crossselling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

// Policies ending this far back still count as recent for suggestions.
const defaultScanWindowDays = 60

// A customer gets at most this many generated opportunities per run.
const maxSuggestionsPerCustomer = 3

type generatorPolicySource interface {
	RecentSince(ctx context.Context, cutoff time.Time) ([]models.Policy, error)
}

type productCatalogue interface {
	List(ctx context.Context) ([]models.Product, error)
}

type generatorRepo interface {
	CustomerKeys(ctx context.Context) (map[string]struct{}, error)
	CreateBatch(ctx context.Context, opps []models.CrossSelling) error
}

type GeneratorParams struct {
	Policies generatorPolicySource
	Products productCatalogue
	Repo     generatorRepo
	Logger   *logger.Logger
	Now      func() time.Time
	// ScanDays bounds how far back policies count as recent.
	// Zero falls back to the sixty-day default.
	ScanDays int
}

// Generator turns recent policies into cross-sell opportunities.
type Generator struct {
	policies generatorPolicySource
	products productCatalogue
	repo     generatorRepo
	logg     *logger.Logger
	now      func() time.Time
	scanDays int
}

func NewGenerator(params GeneratorParams) (*Generator, error) {
	if params.Policies == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "policy source is required")
	}
	if params.Products == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "product catalogue is required")
	}
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "opportunity repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	scanDays := params.ScanDays
	if scanDays <= 0 {
		scanDays = defaultScanWindowDays
	}
	return &Generator{
		policies: params.Policies,
		products: params.Products,
		repo:     params.Repo,
		logg:     params.Logger,
		now:      now,
		scanDays: scanDays,
	}, nil
}

type customerProfile struct {
	name      string
	tcVKN     string
	held      []string
	heldSet   map[string]struct{}
	companyID *uuid.UUID
}

// Run scans policies from the recent window, groups them by customer
// and inserts pending opportunities for customers that have none yet.
// It returns the number of opportunities created.
func (g *Generator) Run(ctx context.Context) (int, error) {
	now := g.now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -g.scanDays)

	recent, err := g.policies.RecentSince(ctx, cutoff)
	if err != nil {
		return 0, coreerrors.Wrap(coreerrors.CodeInternal, err, "load recent policies")
	}
	existing, err := g.repo.CustomerKeys(ctx)
	if err != nil {
		return 0, coreerrors.Wrap(coreerrors.CodeInternal, err, "load existing opportunities")
	}
	catalogue, err := g.products.List(ctx)
	if err != nil {
		return 0, coreerrors.Wrap(coreerrors.CodeInternal, err, "load product catalogue")
	}
	nameByID := make(map[uuid.UUID]string, len(catalogue))
	idByName := make(map[string]uuid.UUID, len(catalogue))
	for _, product := range catalogue {
		nameByID[product.ID] = product.Name
		idByName[product.Name] = product.ID
	}

	profiles := make(map[string]*customerProfile)
	order := make([]string, 0)
	for _, policy := range recent {
		name := strings.TrimSpace(policy.CustomerName)
		if name == "" {
			continue
		}
		key := customerKey(name, policy.CustomerTCVKN)
		if _, taken := existing[key]; taken {
			continue
		}
		profile, ok := profiles[key]
		if !ok {
			profile = &customerProfile{
				name:      name,
				tcVKN:     strings.TrimSpace(policy.CustomerTCVKN),
				heldSet:   make(map[string]struct{}),
				companyID: policy.CompanyID,
			}
			profiles[key] = profile
			order = append(order, key)
		}
		if policy.ProductID == nil {
			continue
		}
		product := nameByID[*policy.ProductID]
		if product == "" {
			continue
		}
		if _, held := profile.heldSet[product]; !held {
			profile.heldSet[product] = struct{}{}
			profile.held = append(profile.held, product)
		}
	}

	var batch []models.CrossSelling
	for _, key := range order {
		profile := profiles[key]
		batch = append(batch, g.suggestFor(profile, idByName)...)
	}
	if err := g.repo.CreateBatch(ctx, batch); err != nil {
		return 0, coreerrors.Wrap(coreerrors.CodeInternal, err, "insert generated opportunities")
	}
	g.logg.Info(g.logg.WithFields(ctx, map[string]any{
		"candidates": len(profiles),
		"created":    len(batch),
	}), "cross-sell generation finished")
	return len(batch), nil
}

func (g *Generator) suggestFor(profile *customerProfile, idByName map[string]uuid.UUID) []models.CrossSelling {
	// Customers whose policies never resolved to a product carry no
	// signal to suggest from.
	if len(profile.held) == 0 {
		return nil
	}
	suggested := make(map[string]struct{})
	var out []models.CrossSelling
	for _, current := range profile.held {
		for _, candidate := range SuggestionsFor(current) {
			if len(out) >= maxSuggestionsPerCustomer {
				return out
			}
			if _, has := profile.heldSet[candidate]; has {
				continue
			}
			if _, dup := suggested[candidate]; dup {
				continue
			}
			suggestedID, known := idByName[candidate]
			if !known {
				// Only offer products the agency actually sells.
				continue
			}
			suggested[candidate] = struct{}{}

			opp := models.CrossSelling{
				ID:              uuid.New(),
				CustomerName:    profile.name,
				CustomerTCVKN:   profile.tcVKN,
				ProductInterest: candidate,
				Notes:           autoNote(current, candidate),
				Priority:        PriorityFor(candidate),
				Status:          models.CrossSellingStatusPending,
				CompanyID:       profile.companyID,
			}
			if currentID, ok := idByName[current]; ok {
				id := currentID
				opp.CurrentProductID = &id
			}
			id := suggestedID
			opp.SuggestedProductID = &id
			out = append(out, opp)
		}
	}
	return out
}

func autoNote(current, suggested string) string {
	return fmt.Sprintf("Otomatik öneri: %s → %s", current, suggested)
}
