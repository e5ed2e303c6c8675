// Package cli prints build and scaffold progress in the framework's house
// style: colored steps, file lists, spinners.
package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

const (
	EmojiCheck   = "✓"
	EmojiCross   = "✗"
	EmojiWarning = "⚠"
	EmojiRocket  = "🚀"
	EmojiFolder  = "📁"
	EmojiFile    = "📝"
	EmojiZap     = "⚡"
	EmojiSearch  = "🔍"
	EmojiPackage = "📦"
	EmojiSparkle = "✨"
	EmojiGear    = "⚙"
)

func PrintHeader(msg string) {
	fmt.Println()
	fmt.Printf("%s%s%s%s\n", ColorBold, ColorCyan, msg, ColorReset)
	fmt.Printf("%s%s%s\n", ColorGray, strings.Repeat("─", len(msg)), ColorReset)
}

func PrintStep(emoji, msg string, args ...any) {
	prefix := ""
	if emoji != "" {
		prefix = emoji + " "
	}
	fmt.Printf("%s%s\n", prefix, fmt.Sprintf(msg, args...))
}

func PrintSuccess(msg string, args ...any) {
	fmt.Printf("%s%s %s%s\n", ColorGreen, EmojiCheck, fmt.Sprintf(msg, args...), ColorReset)
}

func PrintWarning(msg string, args ...any) {
	fmt.Printf("%s%s %s%s\n", ColorYellow, EmojiWarning, fmt.Sprintf(msg, args...), ColorReset)
}

func PrintError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", ColorRed, EmojiCross, fmt.Sprintf(msg, args...), ColorReset)
}

func PrintFile(path string) {
	fmt.Printf("  %s%s%s\n", ColorGray, path, ColorReset)
}

func PrintDone(msg string) {
	fmt.Println()
	fmt.Printf("%s%s %s%s\n", ColorGreen, EmojiSparkle, msg, ColorReset)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type Spinner struct {
	message string
	stop    chan bool
	wg      sync.WaitGroup
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		stop:    make(chan bool),
	}
}

func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frameIdx := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+4))
				return
			case <-ticker.C:
				fmt.Printf("\r%s%s%s %s", ColorCyan, spinnerFrames[frameIdx], ColorReset, s.message)
				frameIdx = (frameIdx + 1) % len(spinnerFrames)
			}
		}
	}()
}

func (s *Spinner) Stop() {
	close(s.stop)
	s.wg.Wait()
}
