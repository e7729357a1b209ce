package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CampusBridge Portal API",
        "description": "Backend-for-frontend gateway for the CampusBridge education portal",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Approvals", "description": "Pending request review workflows"},
        {"name": "Exams", "description": "Timed exam attempt lifecycle"},
        {"name": "Syllabus", "description": "Static course syllabus catalog"},
        {"name": "AI", "description": "AI study-assist endpoints"},
        {"name": "Dashboard", "description": "Student portal dashboard"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/syllabus": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "List course codes with a catalog entry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/syllabus/{code}": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "Get the syllabus for a course code",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/syllabus/{code}/units": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "Get the unit outline for a course code",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/syllabus/{code}/export": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "Export a course syllabus as CSV or PDF",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/admin/approvals/{kind}": {
            "get": {
                "tags": ["Approvals"],
                "summary": "List requests for an approval workflow",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/approvals/{kind}/pending": {
            "get": {
                "tags": ["Approvals"],
                "summary": "List pending requests for an approval workflow",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/approvals/{kind}/{id}/approve": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Approve a pending request",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Decision already in flight"}
                }
            }
        },
        "/admin/approvals/{kind}/{id}/reject": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Reject a pending request with a reason",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RejectPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing rejection reason"}
                }
            }
        },
        "/teachers/approvals/{kind}/pending": {
            "get": {
                "tags": ["Approvals"],
                "summary": "List pending enrollment requests",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Get the student dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List assessments available to the student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/exams/{id}/start": {
            "post": {
                "tags": ["Exams"],
                "summary": "Start or resume a timed exam attempt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/exam-attempts/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Get the current state of an exam attempt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No such attempt"}
                }
            }
        },
        "/students/exam-attempts/{id}/answer": {
            "put": {
                "tags": ["Exams"],
                "summary": "Record the text answer for an attempt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnswerPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/exam-attempts/{id}/file": {
            "post": {
                "tags": ["Exams"],
                "summary": "Attach an answer file to an attempt",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "answer_file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Disallowed file type or size"}
                }
            }
        },
        "/students/exam-attempts/{id}/submit": {
            "post": {
                "tags": ["Exams"],
                "summary": "Submit an exam attempt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Empty submission or missing confirmation"}
                }
            }
        },
        "/students/exam-attempts/{id}/cancel": {
            "post": {
                "tags": ["Exams"],
                "summary": "Cancel an in-progress exam attempt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/ai/resources": {
            "post": {
                "tags": ["AI"],
                "summary": "Recommend study resources for a course chapter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/ai/quiz": {
            "post": {
                "tags": ["AI"],
                "summary": "Generate a practice quiz for a course chapter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Malformed AI response"}
                }
            }
        }
    },
    "definitions": {
        "RejectPayload": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "AnswerPayload": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "SubmitPayload": {
            "type": "object",
            "properties": {
                "confirmed": {"type": "boolean"}
            }
        },
        "ResourceRequest": {
            "type": "object",
            "required": ["course_title", "chapter"],
            "properties": {
                "course_title": {"type": "string"},
                "chapter": {"type": "string"},
                "difficulty": {"type": "string"}
            }
        },
        "QuizRequest": {
            "type": "object",
            "required": ["course_title", "chapter"],
            "properties": {
                "course_title": {"type": "string"},
                "chapter": {"type": "string"},
                "difficulty": {"type": "string"},
                "question_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
