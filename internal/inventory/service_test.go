package inventory

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "inventory.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Car{}, &BrandModel{}))
	return db
}

// newTestService disables backoff sleeps so failure paths stay fast.
func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	s := NewService(db)
	s.retry.Sleep = func(context.Context, time.Duration) error { return nil }
	return s
}

func seedCar(t *testing.T, db *gorm.DB, make, model, variant, carType string, price int64, ready bool) {
	t.Helper()
	require.NoError(t, db.Create(&Car{
		Make:                  make,
		Model:                 model,
		Variant:               variant,
		ManufacturingYear:     2021,
		FuelType:              "Petrol",
		EstimatedSellingPrice: strconv.FormatInt(price, 10),
		Type:                  carType,
		ReadyForSales:         ready,
	}).Error)
}

func TestFilterCars_BudgetPartition(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	// one car per interesting price point, including the exact breakpoints
	prices := []int64{300_000, 500_000, 700_000, 1_000_000, 1_200_000, 1_500_000, 1_800_000, 2_000_000, 2_500_000}
	for i, p := range prices {
		seedCar(t, db, "Make"+strconv.Itoa(i), "M", "V", "SUV", p, true)
	}

	cases := []struct {
		label string
		want  []int64
	}{
		{"Under ₹5 Lakhs", []int64{300_000, 500_000}},
		{"₹5-10 Lakhs", []int64{500_000, 700_000, 1_000_000}},
		{"₹10-15 Lakhs", []int64{1_000_000, 1_200_000, 1_500_000}},
		{"₹15-20 Lakhs", []int64{1_500_000, 1_800_000, 2_000_000}},
		{"Above ₹20 Lakhs", []int64{2_000_000, 2_500_000}},
		{"Any", prices},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			cars := svc.FilterCars(ctx, tc.label, "all", "all")
			var got []int64
			for _, c := range cars {
				p, err := strconv.ParseInt(c.EstimatedSellingPrice, 10, 64)
				require.NoError(t, err)
				got = append(got, p)
			}
			assert.Equal(t, tc.want, got, "bracket %s", tc.label)
		})
	}
}

func TestFilterCars_OrderAndCap(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	for i := 0; i < 25; i++ {
		seedCar(t, db, "Hyundai", "i20", "V"+strconv.Itoa(i), "Hatchback", int64(900_000-i*10_000), true)
	}

	cars := svc.FilterCars(context.Background(), "", "all", "all")
	require.Len(t, cars, 20)

	prev := int64(0)
	for _, c := range cars {
		p, err := strconv.ParseInt(c.EstimatedSellingPrice, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, prev, "results must be price ascending")
		prev = p
	}
}

func TestFilterCars_FacetAndReadyGate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedCar(t, db, "Hyundai", "Creta", "SX", "SUV", 1_200_000, true)
	seedCar(t, db, "Hyundai", "Verna", "S", "Sedan", 1_100_000, true)
	seedCar(t, db, "Tata", "Nexon", "XZ", "SUV", 900_000, true)
	seedCar(t, db, "Tata", "Harrier", "XT", "SUV", 1_600_000, false)

	cars := svc.FilterCars(ctx, "", "SUV", "Tata")
	require.Len(t, cars, 1)
	assert.Equal(t, "Nexon", cars[0].Model)

	// wildcard facets match everything sellable
	assert.Len(t, svc.FilterCars(ctx, "", "all", "all"), 3)
}

func TestFilterCars_FailureReturnsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	require.NoError(t, db.Migrator().DropTable(&Car{}))

	assert.Empty(t, svc.FilterCars(context.Background(), "", "all", "all"))
}

func TestDistinctMakes_PrimaryThenCatalogThenDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedCar(t, db, "Hyundai", "Creta", "SX", "SUV", 1_200_000, true)
	seedCar(t, db, "Tata", "Nexon", "XZ", "SUV", 900_000, true)
	assert.Equal(t, []string{"Hyundai", "Tata"}, svc.DistinctMakes(ctx))

	// primary empty: the catalog answers
	require.NoError(t, db.Where("1 = 1").Delete(&Car{}).Error)
	require.NoError(t, db.Create(&BrandModel{Brand: "Honda", Model: "City"}).Error)
	assert.Equal(t, []string{"Honda"}, svc.DistinctMakes(ctx))

	// both sources gone: static defaults
	require.NoError(t, db.Migrator().DropTable(&Car{}))
	require.NoError(t, db.Migrator().DropTable(&BrandModel{}))
	assert.Equal(t, defaultBrands, svc.DistinctMakes(ctx))
}

func TestDistinctMakes_CappedAtTen(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	for i := 0; i < 12; i++ {
		seedCar(t, db, "Make"+string(rune('A'+i)), "M", "V", "SUV", 800_000, true)
	}

	assert.Len(t, svc.DistinctMakes(context.Background()), 10)
}

func TestModelsForMake_AliasNormalisation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	// nothing in the inventory; the catalog stores the full brand name
	require.NoError(t, db.Create(&BrandModel{Brand: "Maruti Suzuki", Model: "Swift"}).Error)
	require.NoError(t, db.Create(&BrandModel{Brand: "Maruti Suzuki", Model: "Baleno"}).Error)

	assert.Equal(t, []string{"Baleno", "Swift"}, svc.ModelsForMake(ctx, "Maruti"))
}

func TestModelsForMake_DefaultsWhenExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	require.NoError(t, db.Migrator().DropTable(&Car{}))
	require.NoError(t, db.Migrator().DropTable(&BrandModel{}))

	assert.Equal(t, defaultModels, svc.ModelsForMake(context.Background(), "Honda"))
}

func TestAvailableTypes_FiltersByBudget(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedCar(t, db, "Tata", "Nexon", "XZ", "SUV", 900_000, true)
	seedCar(t, db, "Hyundai", "i20", "Asta", "Hatchback", 700_000, true)
	seedCar(t, db, "Hyundai", "Creta", "SX", "SUV", 1_600_000, true)
	seedCar(t, db, "Tata", "Safari", "XM", "SUV", 450_000, false)

	assert.Equal(t, []string{"Hatchback", "SUV"}, svc.AvailableTypes(ctx, "₹5-10 Lakhs"))
	assert.Equal(t, []string{"SUV"}, svc.AvailableTypes(ctx, "₹15-20 Lakhs"))
	// not-ready rows never surface
	assert.Empty(t, svc.AvailableTypes(ctx, "Under ₹5 Lakhs"))
}

func TestAvailableTypes_DefaultsOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	require.NoError(t, db.Migrator().DropTable(&Car{}))

	assert.Equal(t, defaultTypes, svc.AvailableTypes(context.Background(), "Any"))
}

func TestAvailableMakes_FallbackChain(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedCar(t, db, "Tata", "Nexon", "XZ", "SUV", 900_000, true)
	seedCar(t, db, "Hyundai", "i20", "Asta", "Hatchback", 700_000, true)

	assert.Equal(t, []string{"Tata"}, svc.AvailableMakes(ctx, "₹5-10 Lakhs", "SUV"))

	// an empty primary result is a real answer, not a fallback trigger
	assert.Empty(t, svc.AvailableMakes(ctx, "Above ₹20 Lakhs", "SUV"))

	// primary failure falls back to the catalog
	require.NoError(t, db.Create(&BrandModel{Brand: "Honda", Model: "City"}).Error)
	require.NoError(t, db.Migrator().DropTable(&Car{}))
	assert.Equal(t, []string{"Honda"}, svc.AvailableMakes(ctx, "Any", "all"))

	// catalog failure lands on the static defaults
	require.NoError(t, db.Migrator().DropTable(&BrandModel{}))
	assert.Equal(t, defaultBrands, svc.AvailableMakes(ctx, "Any", "all"))
}
