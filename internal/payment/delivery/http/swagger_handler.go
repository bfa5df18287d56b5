package http

// ListPayments godoc
// @Summary List payment records
// @Description Paginated, newest first (Admin only)
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} object{success=bool,data=object{payments=array,page=int,limit=int,total=int}}
// @Failure 403 {object} object{success=bool,message=string}
// @Router /api/payments/payments [get]
func (h *PaymentHandler) ListPaymentsDoc() {}

// GetPayment godoc
// @Summary Get payment record by ID
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,message=string,error=string}
// @Router /api/payments/payments/{id} [get]
func (h *PaymentHandler) GetPaymentDoc() {}

// TotalRevenue godoc
// @Summary Sum of Completed payments
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total=number}}
// @Router /api/payments/total-revenue [get]
func (h *PaymentHandler) TotalRevenueDoc() {}

// UpdatePaymentStatus godoc
// @Summary Move a Pending payment to Completed or Failed
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param paymentID path int true "Payment ID"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,message=string,error=string}
// @Failure 409 {object} object{success=bool,message=string,error=string}
// @Router /api/payments/{paymentID}/status [patch]
func (h *PaymentHandler) UpdatePaymentStatusDoc() {}

// GetMyPayments godoc
// @Summary List the caller's payments
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} object{success=bool,data=object{payments=array,page=int,limit=int,total=int}}
// @Router /api/payments/my [get]
func (h *PaymentHandler) GetMyPaymentsDoc() {}
