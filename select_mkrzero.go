//go:build board_mkrzero

package board

const activeProfileName = "mkrzero"
