package tui

import "time"

type tickMsg time.Time

type restartDoneMsg struct {
	err error
}

type openedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
