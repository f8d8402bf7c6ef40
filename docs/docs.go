// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag/v2"

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
    "paths": {
        "/suppliers": {
            "get": {"tags": ["suppliers"], "summary": "List suppliers", "operationId": "listSuppliers", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["suppliers"], "summary": "Create a supplier", "operationId": "createSupplier", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreatePartnerRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/suppliers/{id}": {
            "get": {"tags": ["suppliers"], "summary": "Get a supplier", "operationId": "getSupplier", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["suppliers"], "summary": "Update a supplier", "operationId": "updateSupplier", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdatePartnerRequest"}}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["suppliers"], "summary": "Delete a supplier", "operationId": "deleteSupplier", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/parties": {
            "get": {"tags": ["parties"], "summary": "List parties", "operationId": "listParties", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["parties"], "summary": "Create a party", "operationId": "createParty", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreatePartnerRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/parties/{id}": {
            "get": {"tags": ["parties"], "summary": "Get a party", "operationId": "getParty", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["parties"], "summary": "Update a party", "operationId": "updateParty", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdatePartnerRequest"}}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["parties"], "summary": "Delete a party", "operationId": "deleteParty", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/banks": {
            "get": {"tags": ["banks"], "summary": "List banks", "operationId": "listBanks", "parameters": [{"in": "query", "name": "name", "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["banks"], "summary": "Register a bank", "operationId": "createBank", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateBankRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/banks/{id}": {
            "get": {"tags": ["banks"], "summary": "Get a bank", "operationId": "getBank", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/bills": {
            "get": {"tags": ["bills"], "summary": "Find a bill by number", "operationId": "retrieveBill",
                "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}, {"in": "query", "name": "bill_number", "type": "string", "required": true}, {"in": "query", "name": "date", "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Ambiguous"}}},
            "post": {"tags": ["bills"], "summary": "Register a bill", "operationId": "insertBill",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/InsertBillRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Duplicate bill"}}}
        },
        "/bills/pending": {
            "get": {"tags": ["bills"], "summary": "List unsettled bills of a pair", "operationId": "pendingBills", "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/bills/{id}": {
            "get": {"tags": ["bills"], "summary": "Get a bill", "operationId": "getBill", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["bills"], "summary": "Overwrite the settlement columns of a bill", "operationId": "updateBill", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateBillRequest"}}], "responses": {"200": {"description": "OK"}, "422": {"description": "Invalid state"}}},
            "delete": {"tags": ["bills"], "summary": "Delete a bill", "operationId": "deleteBill", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Referenced by a memo"}}}
        },
        "/memos": {
            "get": {"tags": ["memos"], "summary": "List the memos of a pair", "operationId": "listMemos", "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["memos"], "summary": "Record a memo", "operationId": "insertMemo",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/InsertMemoRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Bill not found"}, "409": {"description": "Conflict"}, "422": {"description": "Credit already used"}}}
        },
        "/memos/by-number": {
            "get": {"tags": ["memos"], "summary": "Find a memo by number", "operationId": "getMemoByNumber", "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}, {"in": "query", "name": "memo_number", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/memos/total": {
            "post": {"tags": ["memos"], "summary": "Sum memo lines of one type", "operationId": "memoTotal", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/Selection"}}], "responses": {"200": {"description": "OK"}}}
        },
        "/memos/{id}": {
            "get": {"tags": ["memos"], "summary": "Get a memo with its lines and payments", "operationId": "getMemo", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["memos"], "summary": "Undo a memo", "operationId": "deleteMemo", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}, "422": {"description": "Credit already used"}}}
        },
        "/part-payments/unused": {
            "get": {"tags": ["part-payments"], "summary": "List the open credits of a pair", "operationId": "unusedCredits", "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/part-payments/by-memo/{id}": {
            "get": {"tags": ["part-payments"], "summary": "Get the credit opened by a Part memo", "operationId": "creditByMemo", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/part-payments/total": {
            "post": {"tags": ["part-payments"], "summary": "Sum the credits of a selection", "operationId": "creditTotal", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/Selection"}}], "responses": {"200": {"description": "OK"}}}
        },
        "/order-forms": {
            "get": {"tags": ["order-forms"], "summary": "Find an order form by number", "operationId": "retrieveOrderForm", "parameters": [{"$ref": "#/parameters/supplier_id"}, {"$ref": "#/parameters/party_id"}, {"in": "query", "name": "order_form_number", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["order-forms"], "summary": "Record an order form", "operationId": "insertOrderForm", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/InsertOrderFormRequest"}}], "responses": {"201": {"description": "Created"}}}
        },
        "/order-forms/{id}": {
            "delete": {"tags": ["order-forms"], "summary": "Delete an order form", "operationId": "deleteOrderForm", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/order-forms/{id}/delivered": {
            "post": {"tags": ["order-forms"], "summary": "Mark an order form delivered", "operationId": "deliverOrderForm", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "422": {"description": "Already delivered"}}}
        },
        "/reports/kinds": {
            "get": {"tags": ["reports"], "summary": "List report kinds", "operationId": "listReportKinds", "responses": {"200": {"description": "OK"}}}
        },
        "/reports": {
            "post": {"tags": ["reports"], "summary": "Build a report tree", "operationId": "generateReport", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/GenerateRequest"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/reports/pdf": {
            "post": {"tags": ["reports"], "summary": "Render a report to PDF", "operationId": "printReport", "produces": ["application/pdf", "application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/GenerateRequest"}}], "responses": {"200": {"description": "PDF, or a download link when archiving is enabled"}, "429": {"description": "Too Many Requests"}, "501": {"description": "Printing disabled"}}}
        },
        "/audit": {
            "get": {"tags": ["audit"], "summary": "Search the audit log", "operationId": "searchAudit",
                "parameters": [{"in": "query", "name": "table_name", "type": "string"}, {"in": "query", "name": "record_id", "type": "integer"}, {"in": "query", "name": "action", "type": "string", "enum": ["INSERT", "UPDATE", "DELETE"]}, {"in": "query", "name": "from", "type": "string"}, {"in": "query", "name": "to", "type": "string"}, {"$ref": "#/parameters/limit"}, {"$ref": "#/parameters/offset"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AuditEntry"}}}, "400": {"description": "Bad Request"}}}
        },
        "/audit/{table}/{id}": {
            "get": {"tags": ["audit"], "summary": "History of one row", "operationId": "auditHistory",
                "parameters": [{"in": "path", "name": "table", "type": "string", "required": true}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/limit"}, {"$ref": "#/parameters/offset"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AuditEntry"}}}}}
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "integer", "required": true},
        "supplier_id": {"in": "query", "name": "supplier_id", "type": "integer", "required": true},
        "party_id": {"in": "query", "name": "party_id", "type": "integer", "required": true},
        "limit": {"in": "query", "name": "limit", "type": "integer"},
        "offset": {"in": "query", "name": "offset", "type": "integer"}
    },
    "definitions": {
        "CreatePartnerRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "phone_number": {"type": "string"}}},
        "UpdatePartnerRequest": {"type": "object", "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "phone_number": {"type": "string"}}},
        "CreateBankRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "address": {"type": "string"}}},
        "AuditEntry": {"type": "object", "properties": {"id": {"type": "integer"}, "table_name": {"type": "string"}, "record_id": {"type": "integer"}, "action": {"type": "string", "enum": ["INSERT", "UPDATE", "DELETE"]}, "changes": {"type": "object"}, "timestamp": {"type": "string", "format": "date-time"}}},
        "InsertBillRequest": {"type": "object", "required": ["supplier_id", "party_id", "bill_number", "register_date", "amount"], "properties": {"supplier_id": {"type": "integer"}, "party_id": {"type": "integer"}, "bill_number": {"type": "string"}, "register_date": {"type": "string", "example": "2024-04-01"}, "amount": {"type": "integer"}}},
        "UpdateBillRequest": {"type": "object", "required": ["status"], "properties": {"partial_amount": {"type": "integer"}, "gr_amount": {"type": "integer"}, "deduction": {"type": "integer"}, "status": {"type": "string", "enum": ["N", "P", "F"]}}},
        "MemoLine": {"type": "object", "required": ["type"], "properties": {"bill_id": {"type": "integer"}, "amount": {"type": "integer"}, "type": {"type": "string", "enum": ["F", "D", "G", "PR"]}}},
        "MemoPayment": {"type": "object", "required": ["bank_id", "amount"], "properties": {"bank_id": {"type": "integer"}, "cheque_number": {"type": "string"}, "amount": {"type": "integer"}}},
        "InsertMemoRequest": {"type": "object", "required": ["supplier_id", "party_id", "memo_number", "register_date", "mode"], "properties": {"supplier_id": {"type": "integer"}, "party_id": {"type": "integer"}, "memo_number": {"type": "integer"}, "register_date": {"type": "string"}, "mode": {"type": "string", "enum": ["Full", "Part"]}, "lines": {"type": "array", "items": {"$ref": "#/definitions/MemoLine"}}, "payments": {"type": "array", "items": {"$ref": "#/definitions/MemoPayment"}}, "selected_part": {"type": "array", "items": {"type": "integer"}}, "part_amount": {"type": "integer"}}},
        "InsertOrderFormRequest": {"type": "object", "required": ["supplier_id", "party_id", "order_form_number", "register_date"], "properties": {"supplier_id": {"type": "integer"}, "party_id": {"type": "integer"}, "order_form_number": {"type": "integer"}, "register_date": {"type": "string"}}},
        "Selection": {"type": "object", "properties": {"supplier_ids": {"type": "array", "items": {"type": "integer"}}, "party_ids": {"type": "array", "items": {"type": "integer"}}, "supplier_all": {"type": "boolean"}, "party_all": {"type": "boolean"}, "from": {"type": "string"}, "to": {"type": "string"}, "type": {"type": "string", "enum": ["F", "D", "G", "PR"]}}},
        "GenerateRequest": {"type": "object", "required": ["kind", "from", "to"], "properties": {"kind": {"type": "string", "example": "payment_list"}, "supplier_ids": {"type": "array", "items": {"type": "integer"}}, "party_ids": {"type": "array", "items": {"type": "integer"}}, "supplier_all": {"type": "boolean"}, "party_all": {"type": "boolean"}, "from": {"type": "string"}, "to": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Khata Backend API",
	Description:      "Wholesale cloth ledger: bills, memo settlement, part payment credits and reports",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
