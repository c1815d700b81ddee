// Package level owns the external textual representation of the game: the
// bidirectional mapping between tiles and their single-character encoding,
// the hjkl movement alphabet, loading and saving of level files, and a
// caching Manager over a directory of levels.
//
// A level file is a flat character grid, one rune per tile, with blank lines
// and '#' comment lines ignored:
//
//	# a tiny level
//	MMMMMMM
//	MG x FM
//	MMMMMMM
//
// The engine itself never sees characters; everything crossing the text
// boundary goes through this package.
package level
