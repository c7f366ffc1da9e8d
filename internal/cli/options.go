package cli

import "time"

type Options struct {
	Command   []string
	BaseURL   string
	TokenFile string
	From      string
	To        string
	JSON      bool
	LogFile   string
	Timeout   time.Duration
}
