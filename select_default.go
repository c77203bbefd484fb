//go:build !board_mega2560 && !board_leonardo && !board_due && !board_zero && !board_mkrzero

package board

const activeProfileName = "uno"
