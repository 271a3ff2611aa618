//go:build (rp2040 || rp2350) && !board_pico_mcp3221

package boards

var Selected = PicoDefault
