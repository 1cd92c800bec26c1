package colors

import "fmt"

// ColorFunc colorizes any value into a string. Passing one to a logging call switches the color context of the
// arguments that follow it.
type ColorFunc = func(s any) string

// Reset returns the input as a plain string. It is used to end a color context within a logging call.
func Reset(s any) string {
	return fmt.Sprintf("%v", s)
}

// Bold returns the input as a bolded string.
func Bold(s any) string {
	return Colorize(s, BOLD)
}

// bold wraps a colorized string in the bold code.
func bold(s any, c Color) string {
	return Colorize(Colorize(s, c), BOLD)
}

// Red returns the input colorized red.
func Red(s any) string { return Colorize(s, RED) }

// RedBold returns the input colorized bold red.
func RedBold(s any) string { return bold(s, RED) }

// Green returns the input colorized green.
func Green(s any) string { return Colorize(s, GREEN) }

// GreenBold returns the input colorized bold green.
func GreenBold(s any) string { return bold(s, GREEN) }

// Yellow returns the input colorized yellow.
func Yellow(s any) string { return Colorize(s, YELLOW) }

// YellowBold returns the input colorized bold yellow.
func YellowBold(s any) string { return bold(s, YELLOW) }

// Blue returns the input colorized blue.
func Blue(s any) string { return Colorize(s, BLUE) }

// BlueBold returns the input colorized bold blue.
func BlueBold(s any) string { return bold(s, BLUE) }

// Cyan returns the input colorized cyan.
func Cyan(s any) string { return Colorize(s, CYAN) }

// CyanBold returns the input colorized bold cyan.
func CyanBold(s any) string { return bold(s, CYAN) }

// DarkGray returns the input colorized dark gray.
func DarkGray(s any) string { return Colorize(s, DARK_GRAY) }
