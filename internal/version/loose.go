package version

import (
	"regexp"
	"strings"
)

// tagPartPattern peels one numeric component off the front of a tag.
var tagPartPattern = regexp.MustCompile(`^(\d*)(?:\.?(.*))?$`)

// parseLoose recovers major[.minor[.micro[+local]]] from a tag someone clearly meant as a
// version. Anything left over once a component has no leading digit becomes the local part.
// It fails only when the tag has no leading digit at all. Components may have any number
// of digits.
func parseLoose(s string) (Version, bool) {
	tag := strings.TrimPrefix(s, "v")
	v := Version{kind: KindLoose, minor: "0", micro: "0"}

	m := tagPartPattern.FindStringSubmatch(tag)
	if m == nil || m[1] == "" {
		return Version{}, false
	}
	v.major = trimNumber(m[1])
	v = parseLooseTail(v, m[2])

	v.canonical = v.major + "." + v.minor + "." + v.micro
	if v.local != "" {
		v.canonical += "+" + v.local
	}
	v.key = v.canonical
	return v, true
}

func parseLooseTail(v Version, rest string) Version {
	if rest == "" {
		return v
	}

	m := tagPartPattern.FindStringSubmatch(rest)
	if m == nil || m[1] == "" {
		v.local = rest
		return v
	}
	v.minor = trimNumber(m[1])
	if m[2] == "" {
		return v
	}

	rest = m[2]
	m = tagPartPattern.FindStringSubmatch(rest)
	if m == nil || m[1] == "" {
		v.local = rest
		return v
	}
	v.micro = trimNumber(m[1])
	v.local = m[2]
	return v
}
