package catalog

type CreatePaperOptionRequest struct {
	Name          string             `json:"name" validate:"required,max=200"`
	Category      string             `json:"category" validate:"required,max=100"`
	Weight        string             `json:"weight" validate:"max=50"`
	Size          string             `json:"size" validate:"required,max=50"`
	Color         string             `json:"color" validate:"max=50"`
	PricingMethod PaperPricingMethod `json:"pricing_method" validate:"required,oneof=sheet sqft"`
	PricePerSheet float64            `json:"price_per_sheet" validate:"gte=0"`
	CostPerSheet  float64            `json:"cost_per_sheet" validate:"gte=0"`
	PricePerSqft  float64            `json:"price_per_sqft" validate:"gte=0"`
	CostPerSqft   float64            `json:"cost_per_sqft" validate:"gte=0"`
	Width         *float64           `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height        *float64           `json:"height,omitempty" validate:"omitempty,gt=0"`
	IsRoll        bool               `json:"is_roll"`
	RollLength    *float64           `json:"roll_length,omitempty" validate:"omitempty,gt=0"`
}

type UpdatePaperOptionRequest struct {
	Name          *string             `json:"name,omitempty" validate:"omitempty,max=200"`
	Category      *string             `json:"category,omitempty" validate:"omitempty,max=100"`
	Weight        *string             `json:"weight,omitempty" validate:"omitempty,max=50"`
	Color         *string             `json:"color,omitempty" validate:"omitempty,max=50"`
	PricingMethod *PaperPricingMethod `json:"pricing_method,omitempty" validate:"omitempty,oneof=sheet sqft"`
	PricePerSheet *float64            `json:"price_per_sheet,omitempty" validate:"omitempty,gte=0"`
	CostPerSheet  *float64            `json:"cost_per_sheet,omitempty" validate:"omitempty,gte=0"`
	PricePerSqft  *float64            `json:"price_per_sqft,omitempty" validate:"omitempty,gte=0"`
	CostPerSqft   *float64            `json:"cost_per_sqft,omitempty" validate:"omitempty,gte=0"`
	Width         *float64            `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height        *float64            `json:"height,omitempty" validate:"omitempty,gt=0"`
	RollLength    *float64            `json:"roll_length,omitempty" validate:"omitempty,gt=0"`
	IsActive      *bool               `json:"is_active,omitempty"`
}

type CreatePrintPricingRequest struct {
	Name          string             `json:"name" validate:"required,max=200"`
	PaperSize     string             `json:"paper_size" validate:"required,max=50"`
	ColorType     string             `json:"color_type" validate:"required,max=50"`
	PricingMethod PrintPricingMethod `json:"pricing_method" validate:"required,oneof=side sqft"`
	PricePerSide  float64            `json:"per_page_price" validate:"gte=0"`
	CostPerSide   float64            `json:"per_page_cost" validate:"gte=0"`
	PricePerSqft  float64            `json:"price_per_sqft" validate:"gte=0"`
	CostPerSqft   float64            `json:"cost_per_sqft" validate:"gte=0"`
	Duplex        bool               `json:"duplex"`
}

type CreateFinishingOptionRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Category      string  `json:"category" validate:"required,max=100"`
	BasePrice     float64 `json:"base_price" validate:"gte=0"`
	PricePerPiece float64 `json:"price_per_piece" validate:"gte=0"`
	PricePerSqft  float64 `json:"price_per_sqft" validate:"gte=0"`
	MinimumPrice  float64 `json:"minimum_price" validate:"gte=0"`
}

type SavedPriceMaterialReq struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required,max=50"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Category string  `json:"category" validate:"max=100"`
}

type CreateSavedPriceRequest struct {
	Name       string                  `json:"name" validate:"required,max=200"`
	Category   string                  `json:"category" validate:"required,max=100"`
	CostPrice  float64                 `json:"cost_price" validate:"gte=0"`
	Price      float64                 `json:"price" validate:"gte=0"`
	Unit       string                  `json:"unit" validate:"required,max=50"`
	IsTemplate bool                    `json:"is_template"`
	Materials  []SavedPriceMaterialReq `json:"materials,omitempty" validate:"dive"`
}

type UpdateSavedPriceRequest struct {
	Name      *string                  `json:"name,omitempty" validate:"omitempty,max=200"`
	Category  *string                  `json:"category,omitempty" validate:"omitempty,max=100"`
	CostPrice *float64                 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	Price     *float64                 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Unit      *string                  `json:"unit,omitempty" validate:"omitempty,max=50"`
	Materials *[]SavedPriceMaterialReq `json:"materials,omitempty" validate:"omitempty,dive"`
}

type ListPaperOptionsRequest struct {
	Category *string
	IsActive *bool
}

type ListFinishingOptionsRequest struct {
	Category *string
}

type ListSavedPricesRequest struct {
	Category         *string
	IncludeMaterials bool
	TemplatesOnly    bool
}
