// Package locales loads translation resources.
//
// The built-in resources for en, sl, hr, de and it are embedded in the
// binary. A DirSource overlays <lng>.json files from a directory on top of
// them and can watch the directory for edits.
package locales
