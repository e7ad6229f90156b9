// Package docs registers the swagger description of the mock POS backend.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/products": {"get": {"summary": "List products", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}}}}},
        "/api/product": {"post": {"summary": "Create a product", "consumes": ["application/json"], "parameters": [{"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/product.Product"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Barcode already in use"}}}},
        "/api/product/id/{id}": {"get": {"summary": "Get a product", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/product/barcode/{barcode}": {"get": {"summary": "Find a product by barcode", "parameters": [{"in": "path", "name": "barcode", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/product/{id}": {
            "put": {"summary": "Replace a product", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"summary": "Delete a product", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/product/{id}/image": {
            "get": {"summary": "Product image URL", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"summary": "Set product image URL", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/orders": {"get": {"summary": "List orders", "responses": {"200": {"description": "OK"}}}},
        "/api/order": {"post": {"summary": "Create an order", "description": "Takes stock for every line item.", "parameters": [{"in": "body", "name": "order", "required": true, "schema": {"$ref": "#/definitions/order.Order"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Insufficient stock"}}}},
        "/api/order/{id}": {
            "get": {"summary": "Get an order", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"summary": "Replace an order", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Cancel an order and restock", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/customers": {"get": {"summary": "List customers", "responses": {"200": {"description": "OK"}}}},
        "/api/customer": {"post": {"summary": "Create a customer", "responses": {"201": {"description": "Created"}}}},
        "/api/customer/{id}": {
            "get": {"summary": "Get a customer", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"summary": "Replace a customer", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Delete a customer", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/transaction": {"post": {"summary": "Open a transaction", "responses": {"201": {"description": "Created"}, "400": {"description": "orderId and totalAmount are required"}}}},
        "/api/transaction/{id}": {
            "get": {"summary": "Get a transaction", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"summary": "Replace a transaction", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Delete a transaction", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/payment": {"post": {"summary": "Process a payment", "description": "Card 4000000000000002 is always declined.", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "402": {"description": "Card declined"}, "409": {"description": "Transaction already paid"}}}},
        "/api/payment/{id}": {"get": {"summary": "Get a payment", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/payment/status/{transactionId}": {"get": {"summary": "Payment status for a transaction", "parameters": [{"in": "path", "name": "transactionId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/payment/refund": {"post": {"summary": "Refund a payment", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Already refunded"}}}},
        "/product": {"get": {"summary": "Find a product by barcode (legacy)", "parameters": [{"in": "query", "name": "barcode", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/invoice": {"post": {"summary": "Create an invoice", "description": "Amounts are decimal strings.", "responses": {"201": {"description": "Created"}}}},
        "/invoice/{id}": {"get": {"summary": "Get an invoice", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/invoice/{id}/download": {"get": {"summary": "Download a printable invoice", "produces": ["text/plain"], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/invoice/{id}/email": {"post": {"summary": "Email an invoice", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid email"}}}},
        "/endOfDayReport": {"get": {"summary": "Today's end-of-day report", "responses": {"200": {"description": "OK"}}}},
        "/endOfDayReport/date/{date}": {"get": {"summary": "End-of-day report for a date", "parameters": [{"in": "path", "name": "date", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/endOfDayReport/history": {"get": {"summary": "End-of-day reports for a range", "parameters": [{"in": "query", "name": "startDate", "type": "string", "required": true}, {"in": "query", "name": "endDate", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "categoryId": {"type": "integer"},
                "stockQuantity": {"type": "integer"},
                "barcode": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer"},
                "quantity": {"type": "integer"},
                "price": {"type": "number"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "customerId": {"type": "integer"},
                "orderDate": {"type": "string", "format": "date-time"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "totalAmount": {"type": "number"},
                "discountAmount": {"type": "number"},
                "taxAmount": {"type": "number"},
                "finalAmount": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "POS mock backend",
	Description:      "Development stand-in for the point-of-sale REST backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
