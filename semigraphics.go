package pathview

// Semigraphics used for frames, truncation and path tracing. Strings use \u
// escapes to keep the source ASCII-safe.
const (
	SemigraphicsHorizontalEllipsis = "\u2026" // …
	SemigraphicsMiddleDot          = "\u00b7" // ·
	SemigraphicsBullet             = "\u2022" // •

	BoxDrawingsLightHorizontal      = "\u2500" // ─
	BoxDrawingsLightVertical        = "\u2502" // │
	BoxDrawingsLightDownAndRight    = "\u250c" // ┌
	BoxDrawingsLightDownAndLeft     = "\u2510" // ┐
	BoxDrawingsLightUpAndRight      = "\u2514" // └
	BoxDrawingsLightUpAndLeft       = "\u2518" // ┘
	BoxDrawingsLightArcDownAndRight = "\u256d" // ╭
	BoxDrawingsLightArcDownAndLeft  = "\u256e" // ╮
	BoxDrawingsLightArcUpAndLeft    = "\u256f" // ╯
	BoxDrawingsLightArcUpAndRight   = "\u2570" // ╰
)
