// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// The template follows swag's output layout and mirrors the annotations on
// the HTTP API handlers; keep the two in step when either changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/export": {
            "post": {
                "description": "Dots and dashes are rendered as an 800 Hz tone at 44.1 kHz, mono, 16-bit PCM; the space between letters is three units of silence. Patterns longer than the export limit are rejected.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "audio/wav"
                ],
                "tags": [
                    "export"
                ],
                "summary": "Render Morse as a WAV file",
                "parameters": [
                    {
                        "description": "Morse pattern",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/message.ExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "morse.wav",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Invalid JSON or pattern too long",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/translate": {
            "post": {
                "description": "Encoding drops characters outside A-Z, 0-9 and space. Decoding drops unknown tokens.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "translate"
                ],
                "summary": "Translate text to Morse or Morse to text",
                "parameters": [
                    {
                        "description": "Mode and data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/message.TranslateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/message.TranslateResult"
                        }
                    },
                    "400": {
                        "description": "Invalid JSON or unknown mode",
                        "schema": {
                            "$ref": "#/definitions/message.TranslateResult"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "message.ExportRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "morse": {
                    "type": "string"
                }
            }
        },
        "message.Mode": {
            "type": "string",
            "enum": [
                "encode",
                "decode"
            ],
            "x-enum-varnames": [
                "ModeEncode",
                "ModeDecode"
            ]
        },
        "message.TranslateRequest": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data is the text (encode) or the space-separated Morse (decode).",
                    "type": "string"
                },
                "id": {
                    "description": "ID identifies the request in logs. Filled in by the service when empty.",
                    "type": "string"
                },
                "mode": {
                    "description": "Mode is \"encode\" or \"decode\".",
                    "allOf": [
                        {
                            "$ref": "#/definitions/message.Mode"
                        }
                    ]
                },
                "timestamp": {
                    "description": "Timestamp is when the request was received.",
                    "type": "string"
                }
            }
        },
        "message.TranslateResult": {
            "type": "object",
            "properties": {
                "error": {
                    "description": "Error is set when the request was rejected.",
                    "type": "string"
                },
                "mode": {
                    "description": "Mode is the direction that was applied.",
                    "allOf": [
                        {
                            "$ref": "#/definitions/message.Mode"
                        }
                    ]
                },
                "morse": {
                    "description": "Morse is the Morse side of the translation, suitable for export.",
                    "type": "string"
                },
                "request_id": {
                    "description": "RequestID echoes the request ID.",
                    "type": "string"
                },
                "result": {
                    "description": "Result is what the user asked for: Morse when encoding, text when decoding.",
                    "type": "string"
                },
                "text": {
                    "description": "Text is the plain-text side of the translation.",
                    "type": "string"
                }
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
	Title:            "Pen Morse Code Translator API",
	Description:      "Translates text to International Morse Code and back, and renders Morse as WAV audio.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
