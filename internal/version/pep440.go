package version

import (
	"regexp"
	"strings"
)

// pep440Pattern is the PEP 440 version grammar, including the alternate spellings the
// packaging tools accept (alpha, beta, preview, rev, "-N" post releases).
var pep440Pattern = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<pre_l>alpha|a|beta|b|preview|pre|c|rc)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?(?P<dev_l>dev)[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

var localSeparators = strings.NewReplacer("-", ".", "_", ".")

func parsePEP440(s string) (Version, bool) {
	m := pep440Pattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}
	group := func(name string) string {
		return m[pep440Pattern.SubexpIndex(name)]
	}

	nums := strings.Split(group("release"), ".")
	for i, part := range nums {
		nums[i] = trimNumber(part)
	}
	epoch := trimNumber(group("epoch"))

	var suffix strings.Builder
	if group("pre") != "" {
		suffix.WriteString(normalizePreLabel(group("pre_l")))
		suffix.WriteString(trimNumber(group("pre_n")))
	}
	if group("post") != "" {
		n := group("post_n1")
		if n == "" {
			n = group("post_n2")
		}
		suffix.WriteString(".post")
		suffix.WriteString(trimNumber(n))
	}
	if group("dev") != "" {
		suffix.WriteString(".dev")
		suffix.WriteString(trimNumber(group("dev_n")))
	}

	local := ""
	if l := group("local"); l != "" {
		local = normalizeLocal(l)
	}

	v := Version{
		kind:      KindPEP440,
		canonical: formatPEP440(epoch, nums, suffix.String(), local),
		key:       formatPEP440(epoch, trimTrailingZeros(nums), suffix.String(), local),
		local:     local,
		major:     nums[0],
		minor:     "0",
		micro:     "0",
	}
	if len(nums) > 1 {
		v.minor = nums[1]
	}
	if len(nums) > 2 {
		v.micro = nums[2]
	}
	return v, true
}

// formatPEP440 joins normalized components; a zero epoch is omitted.
func formatPEP440(epoch string, release []string, suffix, local string) string {
	var b strings.Builder
	if epoch != "0" {
		b.WriteString(epoch)
		b.WriteString("!")
	}
	b.WriteString(strings.Join(release, "."))
	b.WriteString(suffix)
	if local != "" {
		b.WriteString("+")
		b.WriteString(local)
	}
	return b.String()
}

func normalizePreLabel(label string) string {
	switch strings.ToLower(label) {
	case "alpha", "a":
		return "a"
	case "beta", "b":
		return "b"
	default:
		return "rc"
	}
}

// trimNumber drops leading zeros; an absent number is 0.
func trimNumber(n string) string {
	n = strings.TrimLeft(n, "0")
	if n == "" {
		return "0"
	}
	return n
}

// normalizeLocal lowercases the local segment, unifies separators to "." and
// strips leading zeros from purely numeric parts.
func normalizeLocal(local string) string {
	parts := strings.Split(localSeparators.Replace(strings.ToLower(local)), ".")
	for i, p := range parts {
		if isDigits(p) {
			parts[i] = trimNumber(p)
		}
	}
	return strings.Join(parts, ".")
}

func trimTrailingZeros(nums []string) []string {
	end := len(nums)
	for end > 1 && nums[end-1] == "0" {
		end--
	}
	return nums[:end]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
