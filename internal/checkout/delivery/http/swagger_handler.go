package http

// CreateSession godoc
// @Summary Create a hosted checkout session
// @Description Converts the LKR total to USD and opens a Stripe Checkout session. The owner is the bearer identity, else user_details.user_id
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body object{items=array,total_amount=number,success_url=string,cancel_url=string,user_details=object{user_id=string}} true "Session request"
// @Success 200 {object} object{success=bool,data=object{id=string,url=string}}
// @Failure 400 {object} object{success=bool,message=string,error=string}
// @Failure 502 {object} object{success=bool,message=string,error=string}
// @Router /api/payments/create-checkout-session [post]
func (h *CheckoutHandler) CreateSessionDoc() {}

// Webhook godoc
// @Summary Payment provider confirmation callback
// @Description Verifies the signature, then books the order and a Completed payment. Redelivered events are acknowledged without side effects
// @Tags Payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,error=string}
// @Router /api/payments/webhook [post]
func (h *CheckoutHandler) WebhookDoc() {}

// CashOnDelivery godoc
// @Summary Place a cash on delivery order
// @Description Persists the order and a Pending payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client retry key"
// @Param request body object{total_amount=number,ordered_items=array,user_details=object{user_id=string}} true "COD order"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,error=string}
// @Failure 409 {object} object{success=bool,message=string,error=string}
// @Router /api/payments/cod [post]
func (h *CheckoutHandler) CashOnDeliveryDoc() {}
