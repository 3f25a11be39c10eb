package cmd

import "fmt"

// maskString masks all but the first 4 and last 4 chars of a string.
func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// prompt reads a single line from stdin with a prompt message.
func prompt(message string) string {
	fmt.Print(message)
	var input string
	fmt.Scanln(&input)
	return input
}

// promptRequired keeps prompting until a non-empty value is entered.
func promptRequired(message string) string {
	for {
		if v := prompt(message); v != "" {
			return v
		}
		fmt.Println("  (required)")
	}
}

func emptyOrValue(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
