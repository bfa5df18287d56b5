package http

// CustomID godoc
// @Summary Allocate the next order ID for a prefix
// @Description Scans existing order IDs with the prefix and returns the next unused one
// @Tags Orders
// @Produce json
// @Param prefix query string true "Order ID prefix"
// @Success 200 {object} object{success=bool,data=object{custom_id=string}}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /api/orders/custom-id [get]
func (h *OrderHandler) CustomIDDoc() {}

// CreateOrder godoc
// @Summary Place a direct order
// @Description Persists an order under a caller supplied order ID; a taken ID is a conflict
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{order_id=string,total_amount=number,payment_method=string,ordered_items=array} true "Order"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,message=string}
// @Router /api/orders/orders-and-payments [post]
func (h *OrderHandler) CreateOrderDoc() {}

// MyOrders godoc
// @Summary The caller's orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,data=array}
// @Failure 401 {object} object{error=string}
// @Router /api/orders/my [get]
func (h *OrderHandler) MyOrdersDoc() {}

// ListOrders godoc
// @Summary All orders with customer and product details
// @Description Missing customers or products render as placeholders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,data=array}
// @Failure 403 {object} object{error=string}
// @Router /api/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}
