package inventory

// Car is one row of the cars inventory table. JSON tags match the legacy
// wire names because sessions embed the last fetched result set.
type Car struct {
	ID                    int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	Make                  string `gorm:"size:64" json:"make"`
	Model                 string `gorm:"size:64" json:"model"`
	Variant               string `gorm:"size:64" json:"variant"`
	ManufacturingYear     int    `gorm:"column:manufacturing_year" json:"manufacturing_year"`
	FuelType              string `gorm:"size:32" json:"fuel_type"`
	EstimatedSellingPrice string `gorm:"column:estimated_selling_price;size:32" json:"estimated_selling_price"`
	Type                  string `gorm:"size:32" json:"type"`
	ReadyForSales         bool   `json:"ready_for_sales"`
}

func (Car) TableName() string { return "cars" }

// DisplayName is the user-facing identity of a car.
func (c Car) DisplayName() string {
	return c.Make + " " + c.Model + " " + c.Variant
}

// BrandModel is the secondary brand/model catalog consulted when the primary
// inventory query fails or yields nothing.
type BrandModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Brand string `gorm:"size:64"`
	Model string `gorm:"size:64"`
}

func (BrandModel) TableName() string { return "car_brands_models" }
