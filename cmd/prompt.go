package cmd

import (
	"bufio"
	"fmt"
	"strings"
)

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptYesNo asks until it gets a usable answer. An empty answer takes the
// default; destructive-adjacent actions pass defaultYes=false so a bare
// enter never confirms them.
func promptYesNo(in *bufio.Reader, prompt string, defaultYes bool) bool {
	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	for {
		fmt.Print(prompt + suffix)
		switch strings.ToLower(readLine(in)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please enter y/yes or n/no.")
	}
}
