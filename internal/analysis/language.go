package analysis

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// maxLanguageSample bounds how much text is fed to the detector.
const maxLanguageSample = 64 * 1024

type Language struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// DetectLanguage guesses the dominant language of the participants' messages.
// System lines and media placeholders are ignored.
func DetectLanguage(tl timeline.Timeline, media string) Language {
	var b strings.Builder
	for _, r := range tl.All() {
		if r.IsNotification() || r.Message == media {
			continue
		}
		b.WriteString(r.Message)
		b.WriteByte('\n')
		if b.Len() >= maxLanguageSample {
			break
		}
	}
	if b.Len() == 0 {
		return Language{}
	}
	info := whatlanggo.Detect(b.String())
	return Language{
		Name:       info.Lang.String(),
		Code:       info.Lang.Iso6391(),
		Confidence: info.Confidence,
	}
}
