package apirequests

// Used for GetAllProducts
type ListProductsRequest struct {
	Sort       string   `query:"sort" validate:"omitempty,oneof=category price name"`
	Categories []string `query:"category" validate:"omitempty,dive,required"`
	Query      string   `query:"q" validate:"omitempty,max=100"`
	Attributes []string `query:"attr" validate:"omitempty,dive,required,max=100"`
	Featured   int      `query:"featured" validate:"omitempty,min=1,max=50"`
}

// Used for GetVisibleProducts
type VisibleProductsRequest struct {
	Categories []string `query:"category" validate:"omitempty,dive,required"`
}

// Used for GetProductBySlug
type ProductDetailRequest struct {
	Slug    string `params:"slug" validate:"required,max=200"`
	Variant string `query:"variant" validate:"omitempty,oneof=base child"`
}

// Used for GetCustomer
type CustomerLookupRequest struct {
	Code string `params:"code" validate:"required,max=64"`
}
