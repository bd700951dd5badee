// Package docs is the swaggo-generated-style documentation package,
// hand-maintained here to keep the swagger introspection route wired
// without invoking the swag code generator, matching the teacher's
// `_ "javanese-chess/docs"` side-effect import pattern.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger metadata, mirroring the shape swag
// generates into this package so gin-swagger can resolve it by name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Room Server API",
	Description:      "Multi-room real-time turn-based game server (Bingo, Crocodile-Tooth, Flag Memory, Gomoku)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
