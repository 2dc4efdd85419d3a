package version

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
)

func parseSemVer(s string) (Version, bool) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, false
	}
	return Version{
		kind:      KindSemVer,
		canonical: sv.String(),
		key:       sv.String(),
		major:     strconv.FormatUint(sv.Major(), 10),
		minor:     strconv.FormatUint(sv.Minor(), 10),
		micro:     strconv.FormatUint(sv.Patch(), 10),
		local:     sv.Metadata(),
		sem:       sv,
	}, true
}
