//go:build board_leonardo

package board

const activeProfileName = "leonardo"
