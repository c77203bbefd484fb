//go:build board_due

package board

const activeProfileName = "due"
