package main

// @title NutriBakery API
// @version 1.0
// @description Bakery storefront backend: catalog, carts, orders, checkout, accounts and content pages
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@nutribakery.example

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Users
// @tag.description Accounts, login and password reset

// @tag.name Products
// @tag.description Catalog and stock

// @tag.name Cart
// @tag.description The caller's cart

// @tag.name Orders
// @tag.description Direct orders and order listings

// @tag.name Payments
// @tag.description Checkout sessions, cash on delivery, webhook and payment records

// @tag.name Content
// @tag.description Blogs, reviews, contact, event orders and chat
