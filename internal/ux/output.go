package ux

import (
	"fmt"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// StepHeader prints a timestamped build step header.
func StepHeader(index, total int, name string) {
	fmt.Printf("%s[%s]%s  %sStep %d/%d: %s%s\n",
		Dim, timestamp(), Reset, Bold, index+1, total, name, Reset)
}

// StepDone prints a step completion message.
func StepDone(name string, duration time.Duration) {
	fmt.Printf("%s[%s]%s  %s✓ %s (%s)%s\n",
		Dim, timestamp(), Reset, Green, name, duration.Round(time.Millisecond), Reset)
}

// StepFail prints a step failure message.
func StepFail(name, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ %s failed: %s%s\n",
		Dim, timestamp(), Reset, Red, name, errMsg, Reset)
}

// WarningList prints collected build warnings.
func WarningList(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("\n%s⚠ %d warning(s):%s\n", Yellow, len(warnings), Reset)
	for _, w := range warnings {
		fmt.Printf("  %s•%s %s\n", Yellow, Reset, w)
	}
}

// Success prints a final success message.
func Success(outputs int) {
	fmt.Printf("\n%s%s══ Build complete: %d output file(s) ══%s\n\n",
		Bold, Green, outputs, Reset)
}

// Hint prints a follow-up command suggestion.
func Hint(command string) {
	fmt.Printf("\n%sNext:%s %s\n", Yellow, Reset, command)
}
