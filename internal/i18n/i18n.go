// Package i18n looks up UI strings by locale.
package i18n

// Message keys.
const (
	Start     = "start"
	Stop      = "stop"
	Speed     = "speed"
	Errors    = "errors"
	WPM       = "wpm"
	History   = "history"
	NoHistory = "noHistory"
	TimeUp    = "timeup"
	LoadError = "loadError"
	Theme     = "theme"
	Language  = "language"
	Quit      = "quit"
)

var translations = map[string]map[string]string{
	"en": {
		Start:     "Start",
		Stop:      "Stop",
		Speed:     "Speed",
		Errors:    "Errors",
		WPM:       "WPM",
		History:   "History",
		NoHistory: "No history yet",
		TimeUp:    "Time is up!",
		LoadError: "Could not load phrases. Try again later.",
		Theme:     "Theme",
		Language:  "Language",
		Quit:      "Quit",
	},
	"ua": {
		Start:     "Старт",
		Stop:      "Стоп",
		Speed:     "Швидкість",
		Errors:    "Помилки",
		WPM:       "ЗНХ",
		History:   "Історія",
		NoHistory: "Історія порожня",
		TimeUp:    "Час вийшов!",
		LoadError: "Не вдалося завантажити фрази. Спробуйте пізніше.",
		Theme:     "Тема",
		Language:  "Мова",
		Quit:      "Вихід",
	},
}

// T returns the string for key in locale, or key itself when missing.
func T(locale, key string) string {
	if msgs, ok := translations[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return key
}
