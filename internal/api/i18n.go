package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Envelope messages in English and Brazilian Portuguese, selected by
// Accept-Language. English is the fallback.
var messages = map[string]map[string]string{
	"en": {
		"error.validation":        "validation failed",
		"error.not_found":         "solicitacao not found",
		"error.duplicate":         "record already exists",
		"error.store_unavailable": "database unavailable",
		"error.internal":          "internal server error",
		"error.invalid_id":        "id must be a positive integer",
		"error.invalid_body":      "invalid request body",
		"error.route_not_found":   "route not found",
		"error.csrf":              "invalid csrf token",
		"error.rate_limited":      "too many requests",
		"error.unhealthy":         "service unhealthy",
		"success.created":         "solicitacao created",
		"success.updated":         "solicitacao updated",
		"success.status_updated":  "status updated",
		"success.deleted":         "solicitacao deleted",
		"success.schema":          "schema ensured",
	},
	"pt": {
		"error.validation":        "falha de validação",
		"error.not_found":         "solicitação não encontrada",
		"error.duplicate":         "registro já existe",
		"error.store_unavailable": "banco de dados indisponível",
		"error.internal":          "erro interno do servidor",
		"error.invalid_id":        "id deve ser um inteiro positivo",
		"error.invalid_body":      "corpo da requisição inválido",
		"error.route_not_found":   "rota não encontrada",
		"error.csrf":              "token csrf inválido",
		"error.rate_limited":      "muitas requisições",
		"error.unhealthy":         "serviço indisponível",
		"success.created":         "solicitação criada",
		"success.updated":         "solicitação atualizada",
		"success.status_updated":  "status atualizado",
		"success.deleted":         "solicitação excluída",
		"success.schema":          "esquema garantido",
	},
}

// LanguageMiddleware stores the negotiated language on the context.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"
		accept := strings.ToLower(c.GetHeader("Accept-Language"))
		if strings.HasPrefix(accept, "pt") {
			lang = "pt"
		}
		c.Set("lang", lang)
		c.Next()
	}
}

// T translates a message key for the request's language, falling back to
// English and then to the key itself.
func T(c *gin.Context, key string) string {
	lang := c.GetString("lang")
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages["en"][key]; ok {
		return msg
	}
	return key
}
