// Package catalog provides the static registry of languages the translator
// supports, including the "auto" entry used to ask the provider to detect
// the source language.
package catalog

// AutoCode is the reserved code meaning "detect the source language".
// It must never appear as a translation target.
const AutoCode = "auto"

// Language describes one catalog entry.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

var languages = []Language{
	{Code: AutoCode, Name: "Detect language", NativeName: "Detect language"},
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "uk", Name: "Ukrainian", NativeName: "Українська"},
	{Code: "pl", Name: "Polish", NativeName: "Polski"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska"},
	{Code: "da", Name: "Danish", NativeName: "Dansk"},
	{Code: "fi", Name: "Finnish", NativeName: "Suomi"},
	{Code: "el", Name: "Greek", NativeName: "Ελληνικά"},
	{Code: "cs", Name: "Czech", NativeName: "Čeština"},
	{Code: "ro", Name: "Romanian", NativeName: "Română"},
	{Code: "hu", Name: "Hungarian", NativeName: "Magyar"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية"},
	{Code: "he", Name: "Hebrew", NativeName: "עברית"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
	{Code: "th", Name: "Thai", NativeName: "ไทย"},
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia"},
	{Code: "ms", Name: "Malay", NativeName: "Bahasa Melayu"},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(languages))
	for _, l := range languages {
		m[l.Code] = l
	}
	return m
}()

// Languages returns the full catalog, sentinel first.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Selectable returns the catalog without the auto-detect entry, for use in
// target-language pickers.
func Selectable() []Language {
	out := make([]Language, 0, len(languages)-1)
	for _, l := range languages {
		if l.Code != AutoCode {
			out = append(out, l)
		}
	}
	return out
}

// Lookup returns the entry for code, if present.
func Lookup(code string) (Language, bool) {
	l, ok := byCode[code]
	return l, ok
}

// IsAuto reports whether code is the auto-detect sentinel.
func IsAuto(code string) bool {
	return code == AutoCode
}

// DisplayName resolves code to its English name. Unknown codes fall back to
// "English" so speech synthesis always has a concrete voice language.
func DisplayName(code string) string {
	if l, ok := byCode[code]; ok {
		return l.Name
	}
	return "English"
}
