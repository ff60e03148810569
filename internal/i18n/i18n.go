// Package i18n holds the client's user-facing strings for the supported
// locales, registered in the golang.org/x/text message catalog.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyDefaultUserName   = "user.default_name"
	KeyGreeting          = "user.greeting"
	KeyLoading           = "area.loading"
	KeyUnavailableMobile = "area.unavailable_mobile"
	KeyRedirected        = "area.redirected"
	KeyLoginFailed       = "auth.login_failed"
	KeyLoggedOut         = "auth.logged_out"
)

var supported = []language.Tag{
	language.French,
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.French: {
		KeyDefaultUserName:   "Bénévole",
		KeyGreeting:          "Bonjour, %s !",
		KeyLoading:           "Chargement…",
		KeyUnavailableMobile: "Cet espace est disponible uniquement sur le web.",
		KeyRedirected:        "Redirection vers %s",
		KeyLoginFailed:       "Échec de la connexion : %v",
		KeyLoggedOut:         "Vous êtes déconnecté.",
	},
	language.English: {
		KeyDefaultUserName:   "Volunteer",
		KeyGreeting:          "Hello, %s!",
		KeyLoading:           "Loading…",
		KeyUnavailableMobile: "This area is only available on the web.",
		KeyRedirected:        "Redirecting to %s",
		KeyLoginFailed:       "Login failed: %v",
		KeyLoggedOut:         "You are logged out.",
	},
}

func init() {
	for tag, msgs := range catalog {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer renders catalog messages for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported locale for the given BCP 47 string.
// French is used when nothing matches.
func New(locale string) *Localizer {
	tag := Match(locale)
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Match returns the supported tag closest to locale.
func Match(locale string) language.Tag {
	desired, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(desired)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T formats the message for key with args.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
