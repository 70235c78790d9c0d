// Package uniuri generates random identifiers from crypto/rand,
// used for uploaded media file names and opaque tokens.
package uniuri
