package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a customer account with an NBU_ display ID
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,phone_number=string} true "Signup data"
// @Success 201 {object} object{success=bool,message=string,data=object{user_id=string,username=string,email=string,role=string}}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,message=string}
// @Failure 429 {object} object{error=string}
// @Router /api/users/signup [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate by email and get a JWT valid for one hour
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,user_id=string,username=string,role=string}}
// @Failure 401 {object} object{success=bool,message=string}
// @Router /api/users/login [post]
func (h *UserHandler) LoginDoc() {}

// ForgotPassword godoc
// @Summary Request a password reset token by email
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Failure 502 {object} object{success=bool,message=string}
// @Router /api/users/forgot-password [post]
func (h *UserHandler) ForgotPasswordDoc() {}

// ResetPassword godoc
// @Summary Reset the password with a mailed token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{token=string,newPassword=string} true "Reset data"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /api/users/reset-password [post]
func (h *UserHandler) ResetPasswordDoc() {}

// Promote godoc
// @Summary Promote a user to admin
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{username=string} true "Username"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 403 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/users/promote [post]
func (h *UserHandler) PromoteDoc() {}

// ListUsers godoc
// @Summary List users, or probe whether a user exists
// @Description Without user_id the listing is admin only, 8 users per page
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param user_id query string false "NBU_ display ID to probe"
// @Success 200 {object} object{success=bool,data=object{users=array,totalPages=int,currentPage=int}}
// @Failure 401 {object} object{success=bool,message=string}
// @Failure 403 {object} object{success=bool,message=string}
// @Router /api/users [get]
func (h *UserHandler) ListUsersDoc() {}

// Count godoc
// @Summary Number of registered users
// @Tags Users
// @Produce json
// @Success 200 {object} object{success=bool,data=object{count=int}}
// @Router /api/users/count [get]
func (h *UserHandler) CountDoc() {}

// Me godoc
// @Summary Current user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 401 {object} object{success=bool,message=string}
// @Router /api/users/me [get]
func (h *UserHandler) MeDoc() {}

// UpdateAddress godoc
// @Summary Update the caller's delivery address
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{address=string,phone_number=string} true "Delivery details"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /api/users/updateAddress [put]
func (h *UserHandler) UpdateAddressDoc() {}

// UpdateUser godoc
// @Summary Update a user (admin)
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userID path string true "NBU_ display ID"
// @Param request body object{username=string,email=string,role=string,address=string,phone_number=string} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 403 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/users/{userID} [put]
func (h *UserHandler) UpdateUserDoc() {}
