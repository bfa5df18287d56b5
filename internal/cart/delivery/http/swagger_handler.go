package http

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adds quantity to an existing line or appends a new one
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{product_id=string,quantity=int,customization_options=object} true "Cart line"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 401 {object} object{error=string}
// @Router /api/cart [post]
func (h *CartHandler) AddItemDoc() {}

// GetCart godoc
// @Summary Get the caller's cart
// @Description Lines carry current product details; products no longer in the catalog are skipped
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,data=object{items=array,total_amount=number}}
// @Failure 401 {object} object{error=string}
// @Router /api/cart [get]
func (h *CartHandler) GetCartDoc() {}

// UpdateQuantity godoc
// @Summary Set a line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{product_id=string,quantity=int} true "Quantity update"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/cart/updateQuantity [put]
func (h *CartHandler) UpdateQuantityDoc() {}

// UpdateSubscription godoc
// @Summary Set a line subscription
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{product_id=string,subscription_type=string,delivery_day=string} true "Subscription update"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/cart/updateSubscription [put]
func (h *CartHandler) UpdateSubscriptionDoc() {}

// RemoveItem godoc
// @Summary Remove a line
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param productID path string true "Product display ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/cart/{productID} [delete]
func (h *CartHandler) RemoveItemDoc() {}

// AfterPayment godoc
// @Summary Clean up the cart after a purchase
// @Description Removes purchased lines and decrements stock; per item outcomes are reported
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{ordered_items=array} true "Purchased items"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/cart/after-payment [post]
func (h *CartHandler) AfterPaymentDoc() {}
