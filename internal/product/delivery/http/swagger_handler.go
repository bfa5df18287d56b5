package http

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a product from a multipart form; the display ID is allocated server side (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param stock formData int true "Stock"
// @Param category formData string true "Category"
// @Param image formData file true "JPEG or PNG image"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,error=string}
// @Failure 403 {object} object{success=bool,message=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List all products
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// ListByCategory godoc
// @Summary List products of one category
// @Description Case-insensitive exact category match
// @Tags Products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/products/category/{category} [get]
func (h *ProductHandler) ListByCategoryDoc() {}

// GetProduct godoc
// @Summary Get product by display ID
// @Tags Products
// @Produce json
// @Param id path string true "Product display ID, e.g. NBP_001"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,message=string,error=string}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// UpdateStock godoc
// @Summary Set product stock
// @Description Sets the absolute stock level and re-derives status (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product display ID"
// @Param request body object{stock=int} true "Stock"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,error=string}
// @Router /api/products/{id}/update-stock [put]
func (h *ProductHandler) UpdateStockDoc() {}
