//go:build board_zero

package board

const activeProfileName = "zero"
