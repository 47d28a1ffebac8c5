package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// Options renders a numbered choice list starting at 1.
func Options(options []string) string {
	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "  %s %s\n", theme.Subtitle.Render(fmt.Sprintf("%d)", i+1)), theme.Body.Render(o))
	}
	return b.String()
}

// Feedback renders a validation message in the success or error color.
func Feedback(correct bool, msg string) string {
	if correct {
		return theme.Correct.Render("✓ " + msg)
	}
	return theme.Incorrect.Render("✗ " + msg)
}
