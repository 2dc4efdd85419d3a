// Package version recognizes version tokens in changelog header lines.
//
// A token is tried against three grammars in a fixed order:
//   - PEP 440 style dotted-numeric versions (1.0, 1.0.0rc1, 2!1.0.post3.dev4+local)
//   - strict semantic versions (1.0.0-alpha+build.5)
//   - a loose fallback that recovers major[.minor[.micro]] from anything starting with a digit
//
// Every grammar is evaluated and the last one that succeeds determines the result.
// Recognition is best-effort: text with no leading digit that the strict grammars reject
// is simply not a version.
package version
