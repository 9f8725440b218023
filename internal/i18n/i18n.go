// Package i18n translates user-facing messages for the bundle API.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

// supported is ordered like the matcher's tags; the first entry is the fallback.
var supported = []struct {
	tag    language.Tag
	locale string
}{
	{language.English, "en"},
	{language.Portuguese, "pt"},
	{language.Dutch, "nl"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up by locale and key.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale, then key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// MatchLocale picks the best supported locale for an Accept-Language value.
func MatchLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supported[idx].locale
}

// GetLocale returns the request's locale from its Accept-Language header.
func GetLocale(c *gin.Context) string {
	return MatchLocale(c.GetHeader(AcceptLanguageHeader))
}

// T translates key for the request's locale.
func T(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

var catalogs = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyValidationFailed:   "Validation failed",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyUnauthorized:       "Unauthorized",
		ErrKeyInvalidCredentials: "Invalid email or password",
		ErrKeyAPIKeyRequired:     "API key is required",
		ErrKeyInvalidAPIKey:      "Invalid API key",
		ErrKeyForbidden:          "Forbidden",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyInvalidToken:       "Invalid or expired token",
		ErrKeyTokenRequired:      "Authentication token is required",
		ErrKeyTimeout:            "Request timed out",
		ErrKeyIdempotencyReused:  "Idempotency key was already used with a different request",
		ErrKeyBundleNotFound:     "Bundle not found",
		ErrKeyBundleExists:       "Bundle with this slug already exists",
		ErrKeyBundleSlugRequired: "slug or name required",
		ErrKeyCatalogUnavailable: "Product catalog is unavailable",
		ErrKeyStorageUnavailable: "Bundle storage is unavailable",

		SuccessKeyBundleDeleted: "Bundle deleted",
	},
	"pt": {
		ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
		ErrKeyValidationFailed:   "Falha na validação",
		ErrKeyInternalError:      "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:       "Não autorizado",
		ErrKeyInvalidCredentials: "E-mail ou senha inválidos",
		ErrKeyAPIKeyRequired:     "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:      "Chave de API inválida",
		ErrKeyForbidden:          "Proibido",
		ErrKeyNotFound:           "Não encontrado",
		ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
		ErrKeyInvalidToken:       "Token inválido ou expirado",
		ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
		ErrKeyTimeout:            "Tempo limite da requisição esgotado",
		ErrKeyIdempotencyReused:  "Chave de idempotência já usada com outra requisição",
		ErrKeyBundleNotFound:     "Pacote não encontrado",
		ErrKeyBundleExists:       "Já existe um pacote com este slug",
		ErrKeyBundleSlugRequired: "slug ou nome obrigatório",
		ErrKeyCatalogUnavailable: "Catálogo de produtos indisponível",
		ErrKeyStorageUnavailable: "Armazenamento de pacotes indisponível",

		SuccessKeyBundleDeleted: "Pacote excluído",
	},
	"nl": {
		ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
		ErrKeyValidationFailed:   "Validatie mislukt",
		ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:       "Niet geautoriseerd",
		ErrKeyInvalidCredentials: "Ongeldig e-mailadres of wachtwoord",
		ErrKeyAPIKeyRequired:     "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:      "Ongeldige API-sleutel",
		ErrKeyForbidden:          "Verboden",
		ErrKeyNotFound:           "Niet gevonden",
		ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyInvalidToken:       "Ongeldig of verlopen token",
		ErrKeyTokenRequired:      "Authenticatietoken is vereist",
		ErrKeyTimeout:            "Verzoek duurde te lang",
		ErrKeyIdempotencyReused:  "Idempotentiesleutel is al gebruikt voor een ander verzoek",
		ErrKeyBundleNotFound:     "Bundel niet gevonden",
		ErrKeyBundleExists:       "Er bestaat al een bundel met deze slug",
		ErrKeyBundleSlugRequired: "slug of naam vereist",
		ErrKeyCatalogUnavailable: "Productcatalogus is niet beschikbaar",
		ErrKeyStorageUnavailable: "Bundelopslag is niet beschikbaar",

		SuccessKeyBundleDeleted: "Bundel verwijderd",
	},
}
