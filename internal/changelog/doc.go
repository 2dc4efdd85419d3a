// Package changelog reads and writes CHANGELOG.txt files.
//
// This package implements:
//   - line-oriented parsing of version headers, "-" bullets and continuation lines
//   - serialization back to the canonical text layout
//   - update, tag lookup and structural comparison over parsed changelogs
//   - terminal formatting for CLI display
//   - the embedded changelog of changelogtxt itself and remote fetching
//
// A CHANGELOG.txt looks like:
//
//	v1.0.1
//	- Fixed bug in parser
//
//	v1.0.0
//	- Initial release
//
// Bullets that appear before the first version header belong to the implicit
// unreleased section, which is always the first entry of a parsed Changelog.
// That section is written without a header.
package changelog
