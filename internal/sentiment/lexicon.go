package sentiment

import (
	"bufio"
	_ "embed"
	"regexp"
	"strconv"
	"strings"
)

//go:embed lexicon.txt
var lexiconData string

// negationFactor is applied to a word's polarity when it follows a negation.
const negationFactor = -0.5

var wordRe = regexp.MustCompile(`[\p{L}']+`)

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "nothing": true, "neither": true, "nor": true,
	"dont": true, "don't": true, "isnt": true, "isn't": true, "wasnt": true, "wasn't": true,
	"cant": true, "can't": true, "wont": true, "won't": true, "didnt": true, "didn't": true,
	"doesnt": true, "doesn't": true, "aren't": true, "arent": true, "nahi": true, "nhi": true,
}

// Lexicon averages the polarity of known words in the text. Intensifiers
// scale the next word and negations flip and dampen it. Text without any
// known word scores 0.
type Lexicon struct {
	polarity    map[string]float64
	intensifier map[string]float64
	emoticons   map[string]float64
}

func NewLexicon() *Lexicon {
	l := &Lexicon{
		polarity:    make(map[string]float64),
		intensifier: make(map[string]float64),
		emoticons:   make(map[string]float64),
	}
	l.load(lexiconData)
	return l
}

// load reads "kind<TAB>token<TAB>value" lines; kind is w (word), i (intensifier) or e (emoticon).
func (l *Lexicon) load(data string) {
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "w":
			l.polarity[fields[1]] = v
		case "i":
			l.intensifier[fields[1]] = v
		case "e":
			l.emoticons[fields[1]] = v
		}
	}
}

func (l *Lexicon) Polarity(text string) float64 {
	var sum float64
	var n int

	for _, f := range strings.Fields(text) {
		if v, ok := l.emoticons[f]; ok {
			sum += v
			n++
		}
	}

	words := wordRe.FindAllString(strings.ToLower(text), -1)
	for i, w := range words {
		p, ok := l.polarity[w]
		if !ok {
			continue
		}
		if i > 0 {
			if k, ok := l.intensifier[words[i-1]]; ok {
				p *= k
			}
		}
		if negated(words, i) {
			p *= negationFactor
		}
		sum += clamp(p)
		n++
	}

	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// negated reports whether one of the two preceding words is a negation.
func negated(words []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if negations[words[j]] {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
