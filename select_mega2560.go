//go:build board_mega2560

package board

const activeProfileName = "mega2560"
