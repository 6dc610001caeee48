// Package docs registers the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/admin/users": {
            "post": {"tags": ["users"], "summary": "Provision a user", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Email taken"}}},
            "get": {"tags": ["users"], "summary": "List users", "security": [{"BearerAuth": []}], "parameters": [
                {"type": "integer", "name": "page", "in": "query"},
                {"type": "integer", "name": "pageSize", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{id}": {
            "delete": {"tags": ["users"], "summary": "Delete user", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "User not found"}, "409": {"description": "User has orders"}}}
        },
        "/users/me": {
            "get": {"tags": ["users"], "summary": "Own profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["users"], "summary": "Update own profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Email taken"}}}
        },
        "/users/me/addresses": {
            "get": {"tags": ["addresses"], "summary": "List saved addresses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["addresses"], "summary": "Save address", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/users/me/addresses/{id}": {
            "put": {"tags": ["addresses"], "summary": "Replace address", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Address not found"}}},
            "delete": {"tags": ["addresses"], "summary": "Delete address", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Address not found"}}}
        },
        "/users/me/addresses/{id}/default": {
            "put": {"tags": ["addresses"], "summary": "Set default address", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Address not found"}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List products", "parameters": [
                {"type": "integer", "name": "page", "in": "query"},
                {"type": "integer", "name": "pageSize", "in": "query"},
                {"type": "string", "name": "category", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "summary": "Create product", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get product", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["products"], "summary": "Update product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["products"], "summary": "Delete product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/carts": {
            "get": {"tags": ["carts"], "summary": "Get the reconciled cart", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["carts"], "summary": "Clear the cart", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/carts/summary": {
            "get": {"tags": ["carts"], "summary": "Cart badge summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/carts/items": {
            "post": {"tags": ["carts"], "summary": "Add an item", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}}
        },
        "/carts/items/{productId}": {
            "put": {"tags": ["carts"], "summary": "Set item quantity", "security": [{"BearerAuth": []}], "parameters": [
                {"type": "string", "name": "productId", "in": "path", "required": true},
                {"type": "string", "name": "size", "in": "query"},
                {"type": "string", "name": "color", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["carts"], "summary": "Remove an item", "security": [{"BearerAuth": []}], "parameters": [
                {"type": "string", "name": "productId", "in": "path", "required": true},
                {"type": "string", "name": "size", "in": "query"},
                {"type": "string", "name": "color", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}}
        },
        "/coupons/apply": {
            "post": {"tags": ["coupons"], "summary": "Validate a coupon against an order amount", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Not applicable"}, "404": {"description": "Unknown or inactive"}, "429": {"description": "Too many attempts"}}}
        },
        "/coupons": {
            "get": {"tags": ["coupons"], "summary": "List coupons", "security": [{"BearerAuth": []}], "parameters": [
                {"type": "string", "name": "search", "in": "query"},
                {"type": "string", "name": "type", "in": "query"},
                {"type": "string", "name": "status", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["coupons"], "summary": "Create coupon", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate code"}}}
        },
        "/coupons/analytics": {
            "get": {"tags": ["coupons"], "summary": "Coupon analytics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/coupons/{id}": {
            "get": {"tags": ["coupons"], "summary": "Get coupon", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["coupons"], "summary": "Update coupon", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["coupons"], "summary": "Delete coupon", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/coupons/{id}/redemptions": {
            "post": {"tags": ["coupons"], "summary": "Record a redemption for an order", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Usage limit reached"}}}
        },
        "/shipping/rates/{zipCode}": {
            "get": {"tags": ["shipping"], "summary": "Shipping charge for a zip code", "parameters": [{"type": "string", "name": "zipCode", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "No rule"}}}
        },
        "/shipping/rules": {
            "get": {"tags": ["shipping"], "summary": "List rules", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["shipping"], "summary": "Add rule", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/shipping/rules/{id}": {
            "delete": {"tags": ["shipping"], "summary": "Delete rule", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/shipping/states/{stateCode}/rules": {
            "delete": {"tags": ["shipping"], "summary": "Delete every rule of a state", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "stateCode", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/orders/quote": {
            "post": {"tags": ["orders"], "summary": "Checkout quote", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/orders": {
            "get": {"tags": ["orders"], "summary": "List own orders", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["orders"], "summary": "Place order from cart", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Stock or coupon conflict"}}}
        },
        "/orders/{id}": {
            "get": {"tags": ["orders"], "summary": "Get order", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["orders"], "summary": "Delete order", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/orders/{id}/invoice": {
            "get": {"tags": ["invoices"], "summary": "Get order invoice", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Order not found or invoice not issued"}}}
        },
        "/admin/orders/{id}/invoice": {
            "post": {"tags": ["invoices"], "summary": "Issue invoice", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Order not found"}, "409": {"description": "Order cancelled"}}}
        },
        "/invoices/{invoiceId}": {
            "get": {"tags": ["invoices"], "summary": "Verify invoice", "parameters": [{"type": "string", "name": "invoiceId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Invoice not found"}}}
        },
        "/orders/{id}/status": {
            "patch": {"tags": ["orders"], "summary": "Move order status", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid transition"}, "409": {"description": "Concurrent change"}}}
        },
        "/admin/orders": {
            "get": {"tags": ["orders"], "summary": "List all orders with stats", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/payments": {
            "post": {"tags": ["payments"], "summary": "Create a payment intent for a card order", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/payments/webhook": {
            "post": {"tags": ["payments"], "summary": "Stripe webhook", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Catalogue, cart, coupons, shipping, orders and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
