package inventory

import (
	"context"

	"gorm.io/gorm"

	errx "github.com/sherpa-concierge-poc/server/internal/core/error"
	"github.com/sherpa-concierge-poc/server/internal/retry"
	logx "github.com/sherpa-concierge-poc/server/pkg/logger"
)

const (
	// listCap bounds option lists to the channel's list-size limit.
	listCap = 10
	// carCap bounds a filtered result set.
	carCap = 20

	// priceExpr normalises the price column, which may hold numeric strings.
	priceExpr = "CAST(estimated_selling_price AS DECIMAL(12,2))"
)

// Static defaults used when every data source is exhausted.
var (
	defaultBrands = []string{"Hyundai", "Maruti", "Honda", "Tata", "Mahindra"}
	defaultModels = []string{"City", "Swift", "i20", "Nexon", "XUV"}
	defaultTypes  = []string{"Hatchback", "Sedan", "SUV", "Compact SUV", "MUV"}

	// brandAliases maps short brand names to their catalog spelling.
	brandAliases = map[string]string{
		"Maruti": "Maruti Suzuki",
	}
)

// Service answers facet queries over the car inventory. Every query runs
// through the retry policy; failures degrade to progressively coarser
// fallbacks and are never surfaced to the caller.
type Service struct {
	db    *gorm.DB
	retry retry.Policy
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
		retry: retry.Policy{
			Classify: classifyStoreError,
		},
	}
}

// classifyStoreError marks schema mismatches permanent; everything else is
// assumed transient.
func classifyStoreError(err error) retry.Class {
	if errx.IsSchemaError(err) {
		return retry.Permanent
	}
	return retry.Transient
}

// listSource is one step of an ordered fallback chain. When skipEmpty is set
// an empty result advances the chain like a failure; otherwise empty results
// are returned as-is.
type listSource struct {
	name      string
	skipEmpty bool
	fetch     func(ctx context.Context) ([]string, error)
}

// resolveList walks sources in order and returns the first usable result.
// With every source exhausted it falls back to the static default.
func (s *Service) resolveList(ctx context.Context, sources []listSource, def []string) []string {
	for _, src := range sources {
		var rows []string
		err := s.retry.Do(ctx, func() error {
			var fetchErr error
			rows, fetchErr = src.fetch(ctx)
			return fetchErr
		})
		if err != nil {
			logx.Warn().Err(errx.WrapDB(err)).Str("source", src.name).Msg("inventory source failed")
			continue
		}
		if len(rows) == 0 && src.skipEmpty {
			continue
		}
		return rows
	}
	logx.Warn().Msg("all inventory sources exhausted, using static defaults")
	return def
}

// DistinctMakes lists all brands present in the inventory, falling back to
// the brand/model catalog and finally to the static default list.
func (s *Service) DistinctMakes(ctx context.Context) []string {
	sources := []listSource{
		{
			name:      "cars",
			skipEmpty: true,
			fetch: func(ctx context.Context) ([]string, error) {
				var rows []string
				err := s.db.WithContext(ctx).Model(&Car{}).
					Distinct("make").
					Where("make IS NOT NULL AND make <> ''").
					Order("make").
					Pluck("make", &rows).Error
				return rows, err
			},
		},
		{
			name:  "catalog",
			fetch: s.catalogBrands,
		},
	}
	return capList(s.resolveList(ctx, sources, defaultBrands), listCap)
}

// ModelsForMake lists distinct models for a brand. The catalog fallback
// normalises known brand-name aliases before querying.
func (s *Service) ModelsForMake(ctx context.Context, make string) []string {
	catalogBrand := make
	if alias, ok := brandAliases[make]; ok {
		catalogBrand = alias
	}

	sources := []listSource{
		{
			name:      "cars",
			skipEmpty: true,
			fetch: func(ctx context.Context) ([]string, error) {
				var rows []string
				err := s.db.WithContext(ctx).Model(&Car{}).
					Distinct("model").
					Where("make = ? AND model IS NOT NULL", make).
					Order("model").
					Pluck("model", &rows).Error
				return rows, err
			},
		},
		{
			name: "catalog",
			fetch: func(ctx context.Context) ([]string, error) {
				var rows []string
				err := s.db.WithContext(ctx).Model(&BrandModel{}).
					Where("brand = ?", catalogBrand).
					Order("model").
					Pluck("model", &rows).Error
				return rows, err
			},
		},
	}
	return capList(s.resolveList(ctx, sources, defaultModels), listCap)
}

// AvailableTypes lists distinct vehicle types with sellable cars inside the
// budget bracket. A fixed default list covers query failure.
func (s *Service) AvailableTypes(ctx context.Context, budget string) []string {
	bracket := BracketForLabel(budget)
	sources := []listSource{
		{
			name: "cars",
			fetch: func(ctx context.Context) ([]string, error) {
				var rows []string
				tx := s.db.WithContext(ctx).Model(&Car{}).
					Distinct("type").
					Where("type IS NOT NULL AND ready_for_sales = ?", true)
				tx = applyBracket(tx, bracket)
				err := tx.Order("type").Pluck("type", &rows).Error
				return rows, err
			},
		},
	}
	return s.resolveList(ctx, sources, defaultTypes)
}

// AvailableMakes lists distinct brands with sellable cars matching the
// optional type and budget filters, with the same fallback chain as
// DistinctMakes.
func (s *Service) AvailableMakes(ctx context.Context, budget, carType string) []string {
	bracket := BracketForLabel(budget)
	sources := []listSource{
		{
			name: "cars",
			fetch: func(ctx context.Context) ([]string, error) {
				var rows []string
				tx := s.db.WithContext(ctx).Model(&Car{}).
					Distinct("make").
					Where("make IS NOT NULL AND ready_for_sales = ?", true)
				if facetSet(carType) {
					tx = tx.Where("type = ?", carType)
				}
				tx = applyBracket(tx, bracket)
				err := tx.Order("make").Pluck("make", &rows).Error
				return rows, err
			},
		},
		{
			name:  "catalog",
			fetch: s.catalogBrands,
		},
	}
	return capList(s.resolveList(ctx, sources, defaultBrands), listCap)
}

// FilterCars runs the primary facet query: sellable cars matching the
// optional exact make and type plus the budget bracket, cheapest first,
// capped at 20 rows. Failures yield an empty result set, never an error.
func (s *Service) FilterCars(ctx context.Context, budget, carType, brand string) []Car {
	bracket := BracketForLabel(budget)

	var cars []Car
	err := s.retry.Do(ctx, func() error {
		cars = cars[:0]
		tx := s.db.WithContext(ctx).Where("ready_for_sales = ?", true)
		if facetSet(brand) {
			tx = tx.Where("make = ?", brand)
		}
		if facetSet(carType) {
			tx = tx.Where("type = ?", carType)
		}
		tx = applyBracket(tx, bracket)
		return tx.Order(priceExpr + " ASC").Limit(carCap).Find(&cars).Error
	})
	if err != nil {
		logx.Warn().Err(errx.WrapDB(err)).Msg("car filter query failed, returning no matches")
		return nil
	}
	return cars
}

func (s *Service) catalogBrands(ctx context.Context) ([]string, error) {
	var rows []string
	err := s.db.WithContext(ctx).Model(&BrandModel{}).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &rows).Error
	return rows, err
}

// applyBracket adds the inclusive price-range predicate. The open bracket
// adds no predicate at all.
func applyBracket(tx *gorm.DB, b Bracket) *gorm.DB {
	if b == BracketAny {
		return tx
	}
	tx = tx.Where(priceExpr+" >= ?", b.Min)
	if b.Bounded() {
		tx = tx.Where(priceExpr+" <= ?", b.Max)
	}
	return tx
}

// facetSet reports whether a facet value is an actual filter rather than an
// "any"/"all" wildcard.
func facetSet(v string) bool {
	return v != "" && v != "Any" && v != "all"
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
